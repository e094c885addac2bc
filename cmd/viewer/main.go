// Command viewer is a terminal client session: it prints the current snapshot
// as a table, then follows the push channel and prints every mutation live.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"live-reviews/client"
	"live-reviews/domain"
	"live-reviews/domain/event"
)

type Config struct {
	ServerURL string `envconfig:"SERVER_URL" default:"http://localhost:8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	Colours   bool   `envconfig:"VIEWER_COLOURS" default:"true"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if !config.Colours {
		color.Disable()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(logs.GetLoggerFromString(config.LogLevel), config.ServerURL)
	c.OnEvent = printEvent
	if err := c.Connect(ctx); err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer c.Close()

	renderSnapshot(c.Reviews())
	color.Gray.Println("\nFollowing live updates, Ctrl+C to quit...")

	<-ctx.Done()
	fmt.Println("\nBye.")
}

func renderSnapshot(reviews []domain.Review) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "DateTime", "Title", "Content"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := lo.Map(reviews, func(review domain.Review, _ int) []string {
		return []string{
			shortID(review.ID.String()),
			review.DateTime.Format("15:04:05"),
			review.Title,
			review.Content,
		}
	})
	table.AppendBulk(rows)
	table.Render()
}

func printEvent(e event.DomainEvent) {
	switch evt := e.(type) {
	case event.ReviewAdded:
		color.Green.Printf("+ %s  %s | %s\n",
			shortID(evt.Review.ID.String()), evt.Review.Title, evt.Review.Content)
	case event.ReviewEdited:
		color.Yellow.Printf("~ %s  %s | %s\n",
			shortID(evt.Review.ID.String()), evt.Review.Title, evt.Review.Content)
	case event.ReviewDeleted:
		color.Red.Printf("- %s\n", shortID(evt.Review.ID.String()))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
