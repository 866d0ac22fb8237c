package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"dustbin-dashboard/internal/config"
	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/notifications"
	"dustbin-dashboard/internal/services"
	"dustbin-dashboard/internal/simulation"
	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/internal/views"
)

// Runs the fill simulation against the seed data without waiting between ticks
// and prints where the fleet ends up.
func main() {
	ticks := flag.Int("ticks", 100, "number of simulation ticks to run")
	alerts := flag.Bool("alerts", false, "send full-bin alerts through the log alerter")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	st := store.New(models.SeedBins())
	queue := notifications.NewQueue(cfg.NotificationTTL)
	defer queue.Close()

	// interface stays nil unless -alerts is set
	var dispatch simulation.Dispatcher
	var dispatcher *services.Dispatcher
	if *alerts {
		dispatcher = services.NewDispatcher(services.NewLogAlerter(cfg.AlertEmail, cfg.AlertPhone), cfg.AlertWorkers)
		dispatch = dispatcher
	}
	sim := simulation.NewSimulator(st, queue, dispatch, cfg.SimulationInterval)

	log.Printf("🎲 Running %d ticks (%s of simulated time)", *ticks, cfg.SimulationInterval*time.Duration(*ticks))
	for i := 1; i <= *ticks; i++ {
		for _, ev := range sim.Step() {
			fmt.Printf("tick %4d: %s\n", i, ev.Message())
		}
	}
	if dispatcher != nil {
		dispatcher.Close()
	}

	bins := st.Snapshot()
	stats := views.ComputeStatistics(bins)

	fmt.Println("\n============================================================")
	fmt.Println("SIMULATION SUMMARY")
	fmt.Println("============================================================")
	for _, row := range views.DefaultTableState().Rows(bins) {
		fmt.Printf("%-10s %3d%%  (%s)\n", row.SerialNumber, row.FillPercentage, row.FillClass)
	}
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Total bins:              %d\n", stats.TotalBins)
	fmt.Printf("Average fill:            %d%%\n", stats.AverageFillPercentage)
	fmt.Printf("Needing attention:       %d\n", stats.NeedingAttention)
	fmt.Printf("Full notifications:      %d\n", len(queue.History()))
	fmt.Println("============================================================")
}
