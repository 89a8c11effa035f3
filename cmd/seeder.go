package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/portfolio/internal/budget"
	budgetPostgres "github.com/frahmantamala/portfolio/internal/budget/postgres"
	"github.com/frahmantamala/portfolio/internal/core/common/validation"
	"github.com/frahmantamala/portfolio/internal/education"
	educationPostgres "github.com/frahmantamala/portfolio/internal/education/postgres"
	"github.com/frahmantamala/portfolio/internal/experience"
	experiencePostgres "github.com/frahmantamala/portfolio/internal/experience/postgres"
	"github.com/frahmantamala/portfolio/internal/project"
	projectPostgres "github.com/frahmantamala/portfolio/internal/project/postgres"
	"github.com/frahmantamala/portfolio/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample portfolio content and a budget for the current month.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
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

		ctx := context.Background()
		if clearData {
			if err := clearSeedTables(ctx, gormDB); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		if err := seedPortfolio(ctx, gormDB); err != nil {
			log.Fatalf("failed to seed portfolio: %v", err)
		}
		if err := seedBudget(ctx, gormDB, time.Now()); err != nil {
			log.Fatalf("failed to seed budget: %v", err)
		}
	},
}

func clearSeedTables(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"budget_transactions", "budget_categories", "budget_periods", "projects", "experiences", "educations"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func seedPortfolio(ctx context.Context, db *gorm.DB) error {
	lg := logger.LoggerWrapper()

	projects := project.NewService(projectPostgres.NewProjectRepository(db), lg)
	first, second := 1, 2
	for _, dto := range []project.CreateProjectDTO{
		{
			Title:     "Monthly Budget",
			Slug:      "monthly-budget",
			Year:      "2025",
			Category:  "Web App",
			Client:    "Personal",
			Overview:  "Plan income, bills and savings per month and track what was actually spent.",
			HeroImage: "/images/projects/monthly-budget.png",
			Featured:  true,
			Order:     &first,
		},
		{
			Title:     "Portfolio",
			Slug:      "portfolio",
			Year:      "2024",
			Category:  "Website",
			Client:    "Personal",
			Overview:  "This site: projects, experience and education served from one API.",
			HeroImage: "/images/projects/portfolio.png",
			Order:     &second,
		},
	} {
		if _, err := projects.Create(ctx, dto); err != nil {
			if errors.Is(err, project.ErrSlugTaken) {
				fmt.Println("project already exists:", dto.Slug)
				continue
			}
			return err
		}
		fmt.Println("Seeded project:", dto.Slug)
	}

	experiences := experience.NewService(experiencePostgres.NewExperienceRepository(db), lg)
	fullTime := "Full-time"
	_, err := experiences.Create(ctx, experience.ExperienceDTO{
		ID:          "acme",
		CompanyName: "Acme Corp",
		Positions: []experience.Position{
			{ID: "acme-swe", Title: "Software Engineer", EmploymentPeriod: "2023 - Present", EmploymentType: &fullTime, Skills: []string{"Go", "PostgreSQL"}},
		},
		IsCurrentEmployer: true,
	})
	switch {
	case errors.Is(err, experience.ErrExperienceExists):
		fmt.Println("experience already exists: acme")
	case err != nil:
		return err
	default:
		fmt.Println("Seeded experience: acme")
	}

	educations := education.NewService(educationPostgres.NewEducationRepository(db), lg)
	_, err = educations.Create(ctx, education.EducationDTO{
		ID:              "state-university",
		InstitutionName: "State University",
		Degrees: []education.Degree{
			{ID: "bsc-cs", Degree: "B.Sc. Computer Science", Period: "2019 - 2023"},
		},
	})
	switch {
	case errors.Is(err, education.ErrEducationExists):
		fmt.Println("education already exists: state-university")
	case err != nil:
		return err
	default:
		fmt.Println("Seeded education: state-university")
	}

	return nil
}

// seedBudget fills the period of now with one category per type and a couple
// of expense transactions, unless the period already has categories.
func seedBudget(ctx context.Context, db *gorm.DB, now time.Time) error {
	svc := budget.NewService(budgetPostgres.NewBudgetRepository(db), nil, logger.LoggerWrapper())

	month, year := budget.MonthOf(now)
	period, err := svc.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: month, Year: year})
	if err != nil {
		return err
	}

	data, err := svc.GetPeriodData(ctx, period.Month, period.Year)
	if err != nil {
		return err
	}
	if len(data.Categories) > 0 {
		fmt.Printf("budget for %s %d already has categories\n", period.Month, period.Year)
		return nil
	}

	var groceries *budget.Category
	for _, dto := range []budget.CreateCategoryDTO{
		{Type: string(budget.TypeIncome), Name: "Salary", PlannedAmount: 4000},
		{Type: string(budget.TypeExpense), Name: "Groceries", PlannedAmount: 450},
		{Type: string(budget.TypeBills), Name: "Rent", PlannedAmount: 1200},
		{Type: string(budget.TypeSavings), Name: "Emergency fund", PlannedAmount: 500},
		{Type: string(budget.TypeDebt), Name: "Student loan", PlannedAmount: 250},
	} {
		category, err := svc.AddCategory(ctx, period.ID, dto)
		if err != nil {
			return err
		}
		if category.Type == budget.TypeExpense {
			groceries = category
		}
	}

	for _, amount := range []float64{62.35, 48.10} {
		if _, err := svc.AddTransaction(ctx, period.ID, budget.CreateTransactionDTO{
			Date:       now.Format(validation.DateLayout),
			CategoryID: groceries.ID,
			Amount:     amount,
		}); err != nil {
			return err
		}
	}

	fmt.Printf("Seeded budget for %s %d\n", period.Month, period.Year)
	return nil
}
