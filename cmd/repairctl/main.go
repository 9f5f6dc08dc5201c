// Command repairctl is a small command-line client for a running
// repair-desk server. It authenticates, runs exactly one command and exits:
//
//	repairctl -addr http://localhost:8080 -identity admin -secret s3cret list
//	repairctl ... list -status New -fleet alpha -sort
//	repairctl ... add -data '{"id":"7","server":"srv-1","status":"New"}'
//	repairctl ... update -id 7 -data '{"priority":"1"}'
//	repairctl ... delete -id 7
//	repairctl ... export -out devices.csv
//	repairctl ... import -file devices.xlsx
//	repairctl ... create-user -new-identity bob -new-secret hunter2
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/repair-desk/internal/adapter"
	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "repair-desk server address")
	identity := flag.String("identity", "", "identity to authenticate as")
	secret := flag.String("secret", "", "secret for the identity")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	version := flag.Bool("version", false, "print build info and exit")
	flag.Parse()

	if *version {
		printBuildInfo()
		return
	}

	log := logger.NewLogger("repairctl")

	command := flag.Arg(0)
	if command == "" {
		log.Fatal().Msg("no command given: expected one of list, add, update, delete, export, import, create-user, logout")
	}

	srv, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: *addr,
		Timeout: *timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := srv.Login(ctx, *identity, *secret)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	log.Debug().Str("role", string(result.Role)).Msg("authenticated")

	if err := runCommand(ctx, srv, command, flag.Args()[1:]); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

func runCommand(ctx context.Context, srv adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "list":
		return runList(ctx, srv, args)
	case "add":
		return runAdd(ctx, srv, args)
	case "update":
		return runUpdate(ctx, srv, args)
	case "delete":
		return runDelete(ctx, srv, args)
	case "export":
		return runExport(ctx, srv, args)
	case "import":
		return runImport(ctx, srv, args)
	case "create-user":
		return runCreateUser(ctx, srv, args)
	case "logout":
		return srv.Logout(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runList(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by exact status")
	fleet := fs.String("fleet", "", "filter by parent fleet substring")
	priority := fs.String("priority", "", "filter by exact priority")
	sort := fs.Bool("sort", false, "sort by ascending priority")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := srv.Records(ctx, models.FilterSpec{
		Status:      *status,
		ParentFleet: *fleet,
		Priority:    *priority,
	}, *sort)
	if err != nil {
		return err
	}

	printTable(table)
	return nil
}

func runAdd(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	data := fs.String("data", "", "record fields as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	row, err := decodeFields(*data)
	if err != nil {
		return err
	}

	return srv.AddRecord(ctx, row)
}

func runUpdate(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "id of the record(s) to update")
	data := fs.String("data", "", "fields to change as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}

	fields, err := decodeFields(*data)
	if err != nil {
		return err
	}

	return srv.UpdateRecord(ctx, *id, fields)
}

func runDelete(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "id of the record(s) to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}

	return srv.DeleteRecord(ctx, *id)
}

func runExport(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "devices_export.csv", "path to write the exported CSV to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := srv.Export(ctx)
	if err != nil {
		return err
	}

	return os.WriteFile(*out, data, 0o644)
}

func runImport(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV or XLSX file whose contents replace the table")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("missing -file")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	return srv.Import(ctx, filepath.Base(*file), data)
}

func runCreateUser(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	newIdentity := fs.String("new-identity", "", "identity for the new credential")
	newSecret := fs.String("new-secret", "", "secret for the new credential")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *newIdentity == "" || *newSecret == "" {
		return fmt.Errorf("missing -new-identity or -new-secret")
	}

	return srv.CreateUser(ctx, *newIdentity, *newSecret)
}

func decodeFields(data string) (models.Row, error) {
	if strings.TrimSpace(data) == "" {
		return nil, fmt.Errorf("missing -data")
	}

	row := models.Row{}
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		return nil, fmt.Errorf("invalid -data JSON: %w", err)
	}

	return row, nil
}

func printTable(table models.Table) {
	fmt.Println(strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, column := range table.Columns {
			cells[i] = row[column]
		}

		fmt.Println(strings.Join(cells, "\t"))
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
