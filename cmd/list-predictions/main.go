// list-predictions prints recent rows from the carpriced prediction history
// database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mohanad/carpriced/config"
	"github.com/mohanad/carpriced/storage"
)

func main() {
	var dbPath string
	var limit int

	flag.StringVar(&dbPath, "db", "", "Path to the predictions database (defaults to DB_PATH)")
	flag.IntVar(&limit, "limit", 20, "Number of rows to print")
	flag.Parse()

	// Same env file resolution as the server.
	config.LoadEnvFile()

	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		fmt.Fprintf(os.Stderr, "no database path: pass -db or set DB_PATH\n")
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database at %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer store.Close()

	predictions, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading predictions: %v\n", err)
		os.Exit(1)
	}
	if len(predictions) == 0 {
		fmt.Println("No predictions recorded.")
		return
	}

	for _, p := range predictions {
		fmt.Printf("#%d  %s  %.2f USD -> %.2f %s\n",
			p.ID, p.CreatedAt.Format("2006-01-02 15:04:05"), p.PriceUSD, p.Price, p.Currency)
	}
}
