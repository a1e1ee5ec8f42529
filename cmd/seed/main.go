package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"nakliye/internal/app"
	"nakliye/internal/config"
	"nakliye/internal/seed"
	"nakliye/internal/service"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	envFile := fs.String("env-file", config.DefaultEnvFile, "path to the .env file")
	email := fs.String("admin-email", "", "admin account email (default $ADMIN_EMAIL)")
	password := fs.String("admin-password", "", "admin account password (default $ADMIN_PASSWORD)")
	fullName := fs.String("admin-name", "Platform Admin", "admin display name")
	_ = fs.Parse(os.Args[1:])

	// flags win over the .env file, which config.Load reads again later
	_ = godotenv.Load(*envFile)
	if *email == "" {
		*email = envOr("ADMIN_EMAIL", "admin@nakliye.local")
	}
	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *password == "" {
		log.Fatal("admin password is required (--admin-password or ADMIN_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container := app.NewContainerBuilder([]string{"--env-file", *envFile}).MustBuild(ctx)
	err := container.Invoke(func(
		auth service.AuthService,
		plans service.MembershipService,
		slides service.HeroSlideService,
		contacts service.ContactService,
	) error {
		steps := seed.New(auth, plans, slides, contacts).Steps(seed.Admin{
			Email:    *email,
			Password: *password,
			FullName: *fullName,
		})

		bar := progressbar.NewOptions(len(steps),
			progressbar.OptionSetDescription("seeding"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		created := make([]string, 0, len(steps))
		for _, step := range steps {
			bar.Describe(step.Name)
			n, err := step.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", step.Name, err)
			}
			created = append(created, fmt.Sprintf("%s=%d", step.Name, n))
			_ = bar.Add(1)
		}
		log.Printf("Seed complete: %v", created)
		return nil
	})
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
