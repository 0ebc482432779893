package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"loan-agent-be/internal/bootstrap"
	"loan-agent-be/internal/config"
	"loan-agent-be/pkg/database"
	"loan-agent-be/pkg/store"

	"github.com/fatih/color"
)

var (
	assistant = color.New(color.FgCyan)
	prompt    = color.New(color.FgYellow, color.Bold)
	faint     = color.New(color.Faint)
)

// Terminal client for the loan assistant. With --memory it runs against
// the in-memory record store, so no database is needed to try the flow.
func main() {
	memoryMode := flag.Bool("memory", false, "use the in-memory record store instead of postgres")
	flag.Parse()

	cfg := config.Load()

	var container *bootstrap.Container
	if *memoryMode {
		container = bootstrap.NewMemoryContainer(cfg)
	} else {
		gormDB, err := database.NewGormDB(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("Unable to connect to GORM DB (try --memory): %v", err)
		}
		container = bootstrap.NewContainer(gormDB, cfg)
	}
	defer container.Logger.Sync()

	ctx := context.Background()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}

	result, err := container.ConversationService.StartSession(ctx)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	render(result.Messages)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if result.Halted {
			faint.Println("(session halted)")
			return
		}
		if result.Ended {
			faint.Println("(session ended)")
			return
		}

		switch result.Awaiting {
		case "file":
			prompt.Print("path to image> ")
		default:
			prompt.Print("you> ")
		}
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())

		if result.Awaiting == "file" {
			result, err = container.ConversationService.HandleFile(ctx, result.SessionID, input)
		} else {
			result, err = container.ConversationService.HandleInput(ctx, result.SessionID, input)
		}
		if err != nil {
			log.Fatalf("Turn failed: %v", err)
		}
		render(result.Messages)
	}
}

func render(messages []store.Message) {
	for _, msg := range messages {
		if msg.Role != store.RoleAssistant {
			continue
		}
		if msg.Table != nil {
			renderTable(msg.Table)
			continue
		}
		assistant.Println(msg.Content)
	}
}

func renderTable(rows []map[string]any) {
	if len(rows) == 0 {
		return
	}

	columns := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	widths := make(map[string]int, len(columns))
	for _, col := range columns {
		widths[col] = len(col)
	}
	for _, row := range rows {
		for _, col := range columns {
			if n := len(fmt.Sprint(row[col])); n > widths[col] {
				widths[col] = n
			}
		}
	}

	var header strings.Builder
	for _, col := range columns {
		fmt.Fprintf(&header, "%-*s  ", widths[col], col)
	}
	faint.Println(header.String())

	for _, row := range rows {
		var line strings.Builder
		for _, col := range columns {
			fmt.Fprintf(&line, "%-*v  ", widths[col], row[col])
		}
		assistant.Println(line.String())
	}
}
