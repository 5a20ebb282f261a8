package main

import (
	"chat-bot/repositories"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	command := flag.String("command", "", "Only show invocations of this command")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("missing -db (or BADGER_FILEPATH)")
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"At", "Command", "Args", "Sender", "Target", "Outcome", "Error"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(repositories.InvocationPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				record, err := repositories.DecodeInvocation(v)
				if err != nil {
					// Keep going, one bad entry should not hide the others
					fmt.Printf("Error decoding key %s: %v\n", string(item.Key()), err)
					return nil
				}
				if *command != "" && record.Command != *command {
					return nil
				}
				table.Append([]string{
					record.At.Format("2006-01-02 15:04:05"),
					record.Command,
					strings.Join(record.Args, " "),
					record.Sender,
					record.Target,
					string(record.Outcome),
					record.Error,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
