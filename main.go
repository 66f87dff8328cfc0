package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/xhhuango/json"

	"github.com/bowenq/bsengine/pricing"
	"github.com/bowenq/bsengine/probability"
	"github.com/bowenq/bsengine/server"
)

func main() {
	var (
		addr    = flag.String("addr", "", "listen address (defaults to :$PORT or :8080)")
		scanOut = flag.String("scan", "", "run a sensitivity scan and write JSON results to this file instead of serving")
		spot    = flag.Float64("spot", 100, "scan mode: spot price")
		strike  = flag.Float64("strike", 100, "scan mode: strike price")
		expiry  = flag.Float64("expiry", 0.25, "scan mode: time to expiry in years")
		rate    = flag.Float64("rate", 0.05, "scan mode: risk-free rate")
		vol     = flag.Float64("vol", 0.2, "scan mode: volatility")
		optType = flag.String("type", "call", "scan mode: option type (call|put)")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	if *scanOut != "" {
		runScan(*scanOut, *spot, *strike, *expiry, *rate, *vol, *optType)
		return
	}

	if *addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		*addr = ":" + port
	}

	srv := &http.Server{
		Handler: server.New(),
		Addr:    *addr,
	}

	go func() {
		log.Infof("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: failed to listen and serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http: shutdown: %v", err)
	}
}

func runScan(outFile string, spot, strike, expiry, rate, vol float64, optType string) {
	typ, err := pricing.ParseOptionType(optType)
	if err != nil {
		log.Fatalf("invalid option type: %v", err)
	}

	points, err := probability.SensitivityScan(probability.ScanConfig{
		Spot:         spot,
		Strike:       strike,
		TimeToExpiry: expiry,
		RiskFreeRate: rate,
		Volatility:   vol,
		OptionType:   typ,
		Progress:     true,
	})
	if err != nil {
		log.Fatalf("sensitivity scan failed: %v", err)
	}

	out, err := json.Marshal(points)
	if err != nil {
		log.Fatalf("error marshalling scan results: %v", err)
	}

	if err := os.WriteFile(outFile, out, 0644); err != nil {
		log.Fatalf("error writing to file %s: %v", outFile, err)
	}

	fmt.Printf("Successfully wrote %d scan points to %s\n", len(points), outFile)
}
