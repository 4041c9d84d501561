package main

import (
	"fmt"
	"log"

	"storefront/internal/access"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/session"
	"storefront/internal/storage"
	"storefront/internal/theme"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app bundles the wired core. Everything is constructed once at the root and
// passed down by reference; there are no ambient singletons.
type app struct {
	cfg      *config.Config
	store    storage.Store
	session  *session.Manager
	auth     *api.AuthAPI
	products *api.ProductsAPI
	cart     *cart.Service
	theme    *theme.Manager
}

func newApp() (*app, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store := storage.NewFileStore(cfg.StateDir)
	sess := session.New(store, func(route string) {
		fmt.Printf("Session expired. Sign in again with 'storefront login' (%s).\n", route)
	})

	guestClient := api.NewGuest(cfg.BaseURL, cfg.RequestTimeout)
	authClient := api.NewAuthenticated(cfg.BaseURL, cfg.RequestTimeout, sess, sess.HandleUnauthorized)
	authAPI := api.NewAuthAPI(authClient)
	sess.Bind(authAPI)
	sess.Restore()

	return &app{
		cfg:      cfg,
		store:    store,
		session:  sess,
		auth:     authAPI,
		products: api.NewProductsAPI(guestClient, authClient),
		cart:     cart.NewService(store),
		theme:    theme.NewManager(store),
	}, nil
}

// guard runs the access gate for a route kind and converts a non-render
// decision into an error naming the redirect target.
func (a *app) guard(kind access.RouteKind) error {
	switch decision := access.Evaluate(kind, a.session.Snapshot()); decision {
	case access.Render:
		return nil
	case access.ShowLoading:
		return fmt.Errorf("session still loading, try again")
	default:
		target, _ := decision.Redirect()
		return fmt.Errorf("not available here, continue at %s", target)
	}
}

func newRootCommand() (*cobra.Command, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the store catalog and manage it as an admin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newProductsCommand(a),
		newCartCommand(a),
		newThemeCommand(a),
	)
	return root, nil
}
