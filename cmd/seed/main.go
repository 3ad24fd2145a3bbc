package main

import (
	"context"
	"log"
	"time"

	"workboard/internal/config"
	"workboard/internal/db"
	"workboard/internal/model"
	"workboard/internal/repository"
)

// demoWorkman pairs a workman with the demo orders assigned to them.
type demoWorkman struct {
	name   string
	email  string
	phone  string
	orders []demoOrder
}

type demoOrder struct {
	clientName  string
	description string
	stagePos    int
	priority    int
	daysAgo     int
}

var demoData = []demoWorkman{
	{
		name: "Giorgos", email: "giorgos@workshop.com", phone: "+30 694 000 0001",
		orders: []demoOrder{
			{clientName: "Papadopoulos Residence", description: "Oak kitchen cabinets, 12 units", stagePos: 2, priority: 3, daysAgo: 1},
			{clientName: "Cafe Kentro", description: "Walnut bar counter, 4m", stagePos: 3, priority: 1, daysAgo: 7},
		},
	},
	{
		name: "Nikos", email: "nikos@workshop.com", phone: "+30 694 000 0002",
		orders: []demoOrder{
			{clientName: "Hotel Thalassa", description: "Reception desk restoration", stagePos: 1, priority: 2, daysAgo: 2},
		},
	},
	{
		name: "Maria", phone: "+30 694 000 0003",
		orders: []demoOrder{
			{clientName: "Papadopoulos Residence", description: "Matching dining table and 8 chairs", stagePos: 0, priority: 0, daysAgo: 6},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Workman{},
		&model.Stage{},
		&model.Order{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	workmanRepo := repository.NewWorkmanRepository(gormDB)
	stageRepo := repository.NewStageRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	stages, err := stageRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list stages: %v", err)
	}
	if len(stages) == 0 {
		log.Fatal("No stages found; start the server once to seed the default pipeline")
	}

	created, skipped, err := seedDemoData(ctx, workmanRepo, orderRepo, stages)
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Rows created: %d", created)
	log.Printf("  - Rows already present, skipped: %d", skipped)
}

// seedDemoData inserts demo workmen and their orders, skipping rows that
// already exist so the script can be re-run safely.
func seedDemoData(ctx context.Context, workmanRepo repository.WorkmanRepository, orderRepo repository.OrderRepository, stages []model.Stage) (created, skipped int, err error) {
	existingWorkmen, err := workmanRepo.List(ctx)
	if err != nil {
		return created, skipped, err
	}
	workmanByName := make(map[string]uint, len(existingWorkmen))
	for _, w := range existingWorkmen {
		workmanByName[w.Name] = w.ID
	}

	existingOrders, err := orderRepo.List(ctx)
	if err != nil {
		return created, skipped, err
	}
	orderSeen := make(map[string]bool, len(existingOrders))
	for _, o := range existingOrders {
		orderSeen[o.ClientName+"|"+o.Description] = true
	}

	now := time.Now()
	for _, dw := range demoData {
		workmanID, ok := workmanByName[dw.name]
		if !ok {
			workman := &model.Workman{Name: dw.name, Email: dw.email, Phone: dw.phone}
			if err := workmanRepo.Create(ctx, workman); err != nil {
				return created, skipped, err
			}
			workmanID = workman.ID
			created++
		} else {
			skipped++
		}

		for _, do := range dw.orders {
			if orderSeen[do.clientName+"|"+do.description] {
				skipped++
				continue
			}
			stage := stages[do.stagePos%len(stages)]
			received := now.AddDate(0, 0, -do.daysAgo-14)
			wid := workmanID
			order := &model.Order{
				ClientName:   do.clientName,
				Description:  do.description,
				ReceivedDate: received.Format("2006-01-02"),
				DueDate:      received.AddDate(0, 1, 0).Format("2006-01-02"),
				StageID:      stage.ID,
				WorkmanID:    &wid,
				Priority:     do.priority,
				Status:       model.OrderStatusActive,
				LastUpdated:  now.AddDate(0, 0, -do.daysAgo),
			}
			if err := orderRepo.Create(ctx, order); err != nil {
				return created, skipped, err
			}
			created++
		}
	}

	return created, skipped, nil
}
