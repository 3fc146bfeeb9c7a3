package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	staffDatamodel "github.com/vnphone/staff-portal/internal/core/datamodel/staff"
	"github.com/vnphone/staff-portal/internal/staff"
	staffPostgres "github.com/vnphone/staff-portal/internal/staff/postgres"

	"github.com/spf13/cobra"
)

var (
	seedEmail     string
	seedPhone     string
	seedNickname  string
	seedFirstName string
	seedLastName  string
	seedCompany   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the first admin account",
	Long:  `Create an active admin account, or promote and activate the existing account with the same email.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		repo := staffPostgres.NewStaffRepository(gormDB)
		if err := seedAdmin(cmd.Context(), repo); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
	},
}

type adminSeeder interface {
	FindByIdentifier(ctx context.Context, identifier string) (*staff.Staff, error)
	Create(ctx context.Context, s *staffDatamodel.Staff) error
	Update(ctx context.Context, id string, updates map[string]interface{}) error
}

func seedAdmin(ctx context.Context, repo adminSeeder) error {
	if ctx == nil {
		ctx = context.Background()
	}

	email := strings.ToLower(strings.TrimSpace(seedEmail))
	company := staff.Company(seedCompany)
	if email == "" || strings.TrimSpace(seedPhone) == "" {
		return fmt.Errorf("--email and --phone are required")
	}
	if !company.Valid() {
		return fmt.Errorf("unknown company %q", seedCompany)
	}

	existing, err := repo.FindByIdentifier(ctx, email)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.IsAdmin() && existing.IsActive() {
			fmt.Println("admin already exists:", email)
			return nil
		}
		if err := repo.Update(ctx, existing.ID, map[string]interface{}{
			"role":   string(staff.RoleAdmin),
			"status": string(staff.StatusActive),
		}); err != nil {
			return err
		}
		fmt.Println("Promoted existing account to active admin:", email)
		return nil
	}

	if err := repo.Create(ctx, staff.ToDataModel(&staff.Staff{
		FirstName: seedFirstName,
		LastName:  seedLastName,
		Nickname:  seedNickname,
		Email:     email,
		Phone:     strings.TrimSpace(seedPhone),
		Company:   company,
		Role:      staff.RoleAdmin,
		Status:    staff.StatusActive,
	})); err != nil {
		return err
	}

	fmt.Println("Seeded admin:", email)
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "admin email")
	seedCmd.Flags().StringVar(&seedPhone, "phone", "", "admin phone number")
	seedCmd.Flags().StringVar(&seedNickname, "nickname", "admin", "admin nickname")
	seedCmd.Flags().StringVar(&seedFirstName, "first-name", "Admin", "admin first name")
	seedCmd.Flags().StringVar(&seedLastName, "last-name", "VN Phone", "admin last name")
	seedCmd.Flags().StringVar(&seedCompany, "company", string(staff.CompanyVNPhone), "vnphone or siamchai")
}
