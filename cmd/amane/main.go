// Command amane is a small command-line client over the Amane SDK:
// it drives the session manager (login, whoami, refresh, logout) and a
// few read-only resources, wiring everything once at startup the way an
// embedding UI would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/config"
	"github.com/amane-app/amane-go/services"
	"github.com/amane-app/amane-go/session"
	"github.com/amane-app/amane-go/session/store"
	"github.com/amane-app/amane-go/users"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	c := config.New()
	if c.GetBaseEndpoint() == "" {
		return fmt.Errorf("no API endpoint configured, set AMANE_API_BASE_URL")
	}

	unauthorized := api.NewSignal()
	client, err := api.New(c.GetBaseEndpoint(), unauthorized)
	if err != nil {
		return err
	}
	accounts, err := users.NewService(client)
	if err != nil {
		return err
	}
	repo := store.NewFileStore(filepath.Join(c.GetDataFolder(), "session"))
	manager, err := session.NewManager(accounts, repo, unauthorized,
		session.WithNavigate(func(route string) {
			fmt.Printf("session ended, back to %s\n", route)
		}),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch command {
	case "login":
		return cmdLogin(ctx, manager, args)
	case "whoami":
		return cmdWhoami(ctx, manager)
	case "refresh":
		manager.Hydrate(ctx)
		if err := manager.RefreshUser(ctx); err != nil {
			return err
		}
		return cmdWhoami(ctx, manager)
	case "logout":
		manager.Hydrate(ctx)
		manager.Logout()
		fmt.Println("logged out")
		return nil
	case "campaigns":
		return cmdCampaigns(ctx, client)
	case "nissab":
		return cmdNissab(ctx, client)
	case "locale":
		return cmdLocale(repo, c, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdLogin(ctx context.Context, manager *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "account phone number")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if *password == "" || (*email == "" && *phone == "") {
		return fmt.Errorf("login needs -password and one of -email / -phone")
	}

	ok := manager.Login(ctx, users.Credentials{
		Email:       *email,
		PhoneNumber: *phone,
		Password:    *password,
	})
	if !ok {
		return fmt.Errorf("login failed")
	}
	fmt.Printf("logged in as %s\n", manager.User().FullName())
	return nil
}

func cmdWhoami(ctx context.Context, manager *session.Manager) error {
	manager.Hydrate(ctx)
	user := manager.User()
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
	fmt.Printf("wallet: %.2f %s, score: %.0f\n", user.Wallet.Balance, user.Wallet.Currency, user.Score)
	return nil
}

func cmdCampaigns(ctx context.Context, client *api.Client) error {
	svc, err := services.NewCampaigns(client)
	if err != nil {
		return err
	}
	campaigns, err := svc.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range campaigns {
		fmt.Printf("%-30s %10.2f / %.2f %s\n", c.Title, c.Raised, c.Goal, c.Currency)
	}
	return nil
}

func cmdNissab(ctx context.Context, client *api.Client) error {
	svc, err := services.NewNissab(client)
	if err != nil {
		return err
	}
	thresholds, err := svc.Thresholds(ctx)
	if err != nil {
		return err
	}
	for _, t := range thresholds {
		fmt.Printf("%-8s %10.2f %s\n", t.Metal, t.Amount, t.Currency)
	}
	return nil
}

func cmdLocale(repo store.Repo, c config.EnvConfig, args []string) error {
	fs := flag.NewFlagSet("locale", flag.ExitOnError)
	set := fs.String("set", "", "locale to store")
	_ = fs.Parse(args)

	if *set != "" {
		return repo.SetLocale(*set)
	}
	locale := repo.Locale()
	if locale == "" {
		locale = c.GetDefaultLocale()
	}
	fmt.Println(locale)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: amane <command> [flags]

commands:
  login      -email | -phone, -password
  whoami     show the current session
  refresh    re-fetch the current user
  logout     end the session
  campaigns  list donation campaigns
  nissab     show current nissab thresholds
  locale     show or -set the stored locale`)
}
