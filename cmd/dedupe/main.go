package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/steadyletters/recipients/dedupe"
)

// Small pipeline CLI over the import and duplicate-detection core.
// Usage:
//   dedupe template
//   dedupe import [-format csv|vcard] < contacts.csv > recipients.jsonl
//   dedupe dupes [-config match.yml] < recipients.jsonl
//   dedupe pack < recipients.jsonl > recipients.msgpack
//   dedupe unpack < recipients.msgpack > recipients.jsonl

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "template":
		fmt.Print(dedupe.GenerateCSVTemplate())
	case "import":
		importCmd()
	case "dupes":
		dupes()
	case "pack":
		pack()
	case "unpack":
		unpack()
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "dedupe commands: template | import | dupes | pack | unpack\n")
}

func readStdin() string {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}
	return string(raw)
}

func importCmd() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	format := fs.String("format", "csv", "input format: csv or vcard")
	_ = fs.Parse(os.Args[2:])

	text := readStdin()
	var recipients []dedupe.Recipient
	switch *format {
	case "csv":
		res, err := dedupe.ParseCSV(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		for _, row := range res.Invalid {
			for _, msg := range row.Errors {
				fmt.Fprintf(os.Stderr, "row %d: %s\n", row.RowNumber, msg)
			}
		}
		for _, row := range res.Valid {
			r := row.Data
			r.ID = "row-" + strconv.Itoa(row.RowNumber)
			recipients = append(recipients, r)
		}
	case "vcard":
		res, err := dedupe.ParseVCard(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		for _, c := range res.Invalid {
			for _, msg := range c.Errors {
				fmt.Fprintf(os.Stderr, "line %d: %s\n", c.Line, msg)
			}
		}
		for _, c := range res.Valid {
			r := dedupe.VCardToRecipient(c)
			r.ID = "contact-" + strconv.Itoa(c.Line)
			recipients = append(recipients, r)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown format: %s\n", *format)
		os.Exit(2)
	}
	if err := dedupe.WriteRecipientsJSONL(os.Stdout, recipients); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}
}

func dupes() {
	fs := flag.NewFlagSet("dupes", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML match config overlay")
	_ = fs.Parse(os.Args[2:])

	cfg := dedupe.DefaultMatchConfig()
	if *configPath != "" {
		var err error
		cfg, err = dedupe.LoadMatchConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	recipients := []dedupe.Recipient{}
	err := dedupe.ReadRecipientsJSONL(os.Stdin, func(r dedupe.Recipient) error {
		if r.ID == "" {
			r.ID = "r" + strconv.Itoa(len(recipients))
		}
		recipients = append(recipients, r)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading recipients: %v\n", err)
		os.Exit(1)
	}

	matcher := dedupe.NewMatcher(cfg)
	matches := matcher.FindDuplicates(recipients)
	groups := dedupe.GroupDuplicates(matches)
	out := map[string]any{"matches": matches, "groups": groups}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func pack() {
	recipients := []dedupe.Recipient{}
	err := dedupe.ReadRecipientsJSONL(os.Stdin, func(r dedupe.Recipient) error {
		recipients = append(recipients, r)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading recipients: %v\n", err)
		os.Exit(1)
	}
	if err := dedupe.WriteRecipientsMsgpack(os.Stdout, recipients); err != nil {
		fmt.Fprintf(os.Stderr, "error writing msgpack: %v\n", err)
		os.Exit(1)
	}
}

func unpack() {
	recipients := []dedupe.Recipient{}
	err := dedupe.ReadRecipientsMsgpack(os.Stdin, func(r dedupe.Recipient) error {
		recipients = append(recipients, r)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading msgpack: %v\n", err)
		os.Exit(1)
	}
	if err := dedupe.WriteRecipientsJSONL(os.Stdout, recipients); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}
}
