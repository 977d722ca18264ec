package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nestify/internal/config"
	"nestify/internal/db"
	"nestify/internal/logging"
	"nestify/internal/model"
	"nestify/internal/repository"
	"nestify/internal/validation"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seed the Nestify database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(adminCmd(cfg), demoCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		_ = db.Close(gormDB)
		return nil, err
	}
	return gormDB, nil
}

func adminCmd(cfg *config.Config) *cobra.Command {
	var name, email, password, phone string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin user, or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			if !validation.IsPhone(phone) {
				return fmt.Errorf("invalid phone %q", phone)
			}

			gormDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			ctx := cmd.Context()
			users := repository.NewUserRepository(gormDB)

			existing, err := users.FindByEmail(ctx, email)
			switch {
			case err == nil:
				existing.IsAdmin = true
				if err := users.Update(ctx, existing, "is_admin"); err != nil {
					return fmt.Errorf("promote %s: %w", email, err)
				}
				logging.Info().Str("email", email).Msg("existing user promoted to admin")
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("find %s: %w", email, err)
			}

			user, err := newUser(name, email, password, phone, model.RoleUser)
			if err != nil {
				return err
			}
			user.IsAdmin = true
			if err := users.Create(ctx, user); err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			logging.Info().Str("email", email).Str("id", user.ID.String()).Msg("admin created")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&phone, "phone", "+10000000000", "phone number with country code")
	return cmd
}

const demoEmail = "demo.broker@nestify.local"

func demoCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Create a demo broker with sample listings and room requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(gormDB)

			ctx := cmd.Context()
			users := repository.NewUserRepository(gormDB)
			if _, err := users.FindByEmail(ctx, demoEmail); err == nil {
				logging.Info().Msg("demo data already present, nothing to do")
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			return gormDB.Transaction(func(tx *gorm.DB) error {
				return seedDemo(ctx, tx)
			})
		},
	}
}

func seedDemo(ctx context.Context, tx *gorm.DB) error {
	owner, err := newUser("Demo Broker", demoEmail, "demo1234", "+919800000000", model.RoleBroker)
	if err != nil {
		return err
	}
	owner.Location = "Bengaluru"
	if err := repository.NewUserRepository(tx).Create(ctx, owner); err != nil {
		return fmt.Errorf("create demo broker: %w", err)
	}

	properties := repository.NewPropertyRepository(tx)
	for _, p := range demoProperties() {
		p.OwnerID = owner.ID
		if err := properties.Create(ctx, &p); err != nil {
			return fmt.Errorf("create property %q: %w", p.Title, err)
		}
	}

	requests := repository.NewRoomRequestRepository(tx)
	for _, r := range []model.RoomRequest{
		{Location: "Koramangala, Bengaluru", Budget: "12000", Description: "Working professional, non-smoker."},
		{Location: "Baner, Pune", Budget: "8000.50", Description: "Student looking to share a 2BHK."},
	} {
		r.UserID = owner.ID
		if err := requests.Create(ctx, &r); err != nil {
			return fmt.Errorf("create room request: %w", err)
		}
	}

	logging.Info().Str("owner", owner.Email).Msg("demo data created")
	return nil
}

func demoProperties() []model.Property {
	return []model.Property{
		{
			Title: "Sunny 2BHK near park", City: "Bengaluru", Location: "Indiranagar",
			Rent: decimal.NewFromInt(28000), Deposit: decimal.NewFromInt(100000), Area: 1100,
			PropertyType: "Apartment", NoOfBedroom: 2, Bathrooms: 2, BHKType: "2BHK",
			Amenities: datatypes.JSONSlice[string]{"wifi", "parking", "lift"}, AllowBroker: true,
		},
		{
			Title: "Compact studio", City: "Pune", Location: "Baner",
			Rent: decimal.NewFromInt(12000), Deposit: decimal.NewFromInt(30000), Area: 420,
			PropertyType: "Studio", NoOfBedroom: 1, Bathrooms: 1, BHKType: "1RK",
			Amenities: datatypes.JSONSlice[string]{"wifi"},
		},
		{
			Title: "Sea-facing villa", City: "Goa", Location: "Candolim",
			Rent: decimal.NewFromInt(95000), Deposit: decimal.NewFromInt(300000), Area: 3200,
			PropertyType: "Villa", NoOfBedroom: 4, Bathrooms: 4, BHKType: "4BHK",
			Amenities: datatypes.JSONSlice[string]{"pool", "garden", "parking"}, AllowBroker: true,
		},
	}
}

func newUser(name, email, password, phone string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
		Age:          30,
		Role:         role,
	}, nil
}
