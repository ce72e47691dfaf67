package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mkadit/swiftmt"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the headers and block 4 tags of a message",
	Long:  `Reads one FIN message from a file, or from stdin when the file is "-".`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var seqCmd = &cobra.Command{
	Use:   "seq [file] [sequence]",
	Short: "Print every instance of a named sequence",
	Example: `  mtdump seq statement.fin B
  mtdump seq --type 321 instruction.fin B1c`,
	Args: cobra.ExactArgs(2),
	RunE: runSeq,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check mandatory fields and sequences",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered message types",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Dump the schema of a message type as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchema,
}

var batchCmd = &cobra.Command{
	Use:   "batch [file...]",
	Short: "Parse many messages concurrently and print a summary line each",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

// forcedSchema returns the schema selected with --type, or nil.
func forcedSchema() (*swiftmt.Schema, error) {
	if mtType == "" {
		return nil, nil
	}
	return swiftmt.Lookup(mtType)
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// loadMessage parses strictly unless --type forces a schema, in which case
// a type mismatch is only logged.
func loadMessage(cmd *cobra.Command, path string) (*swiftmt.Message, error) {
	text, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	schema, err := forcedSchema()
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return swiftmt.ParseFIN(text)
	}
	msg := swiftmt.Parse(schema, text)
	if msg.IsEmpty() {
		return nil, fmt.Errorf("%s: no block 4 content", path)
	}
	return msg, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runShow(cmd *cobra.Command, args []string) error {
	msg, err := loadMessage(cmd, args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded message", zap.Object("message", msg))

	out := cmd.OutOrStdout()
	if cfg.Output == "json" {
		return writeJSON(out, msg)
	}
	fmt.Fprintf(out, "MT%s %s\n", msg.Type(), msg.Schema().Name())
	fmt.Fprintf(out, "Sender:   %s\n", msg.Sender())
	fmt.Fprintf(out, "Receiver: %s\n", msg.Receiver())
	if mur := msg.MUR(); mur != "" {
		fmt.Fprintf(out, "MUR:      %s\n", mur)
	}
	if uetr := msg.UETR(); uetr != "" {
		fmt.Fprintf(out, "UETR:     %s\n", uetr)
	}
	if msg.IsServiceMessage() {
		fmt.Fprintf(out, "Service:  %s\n", msg.BasicHeader().Service)
	}
	block4, err := msg.Block4()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, block4.String())
	return nil
}

func runSeq(cmd *cobra.Command, args []string) error {
	msg, err := loadMessage(cmd, args[0])
	if err != nil {
		return err
	}
	blocks, err := msg.SequenceList(args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output == "json" {
		list := make([][]swiftmt.Tag, 0, len(blocks))
		for _, b := range blocks {
			list = append(list, b.Tags())
		}
		return writeJSON(out, list)
	}
	if len(blocks) == 0 {
		fmt.Fprintf(out, "sequence %s not present\n", args[1])
		return nil
	}
	for i, b := range blocks {
		fmt.Fprintf(out, "--- %s[%d]\n%s\n", args[1], i+1, b.String())
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		msg, err := loadMessage(cmd, path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed++
			continue
		}
		errs := msg.Schema().GetValidator().ValidateAll(msg)
		if len(errs) == 0 {
			fmt.Fprintf(out, "%s: OK (MT%s)\n", path, msg.Type())
			continue
		}
		failed++
		for _, e := range errs {
			fmt.Fprintf(out, "%s: %v\n", path, e)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d message(s) failed validation", failed, len(args))
	}
	return nil
}

func runTypes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, mt := range swiftmt.Types() {
		s, err := swiftmt.Lookup(mt)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "MT%s\t%s\t%d sequence(s)\n", mt, s.Name(), len(s.Sequences()))
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, err := swiftmt.Lookup(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cfg.Output == "json" {
		return writeJSON(out, s.Config())
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s.Config()); err != nil {
		return err
	}
	return enc.Close()
}

func runBatch(cmd *cobra.Command, args []string) error {
	raws := make([]string, len(args))
	for i, path := range args {
		text, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		raws[i] = text
	}
	schema, err := forcedSchema()
	if err != nil {
		return err
	}

	var failures []string
	p := swiftmt.NewProcessor(
		swiftmt.WithSchema(schema),
		swiftmt.WithConcurrency(cfg.Concurrency),
		swiftmt.WithProcessorLogger(logger),
		swiftmt.WithErrorHandler(func(err error) {
			logger.Debug("batch item failed", zap.Error(err))
		}),
	)
	results, batchErr := p.ProcessBatch(cmd.Context(), raws)

	out := cmd.OutOrStdout()
	for i, msg := range results {
		if msg == nil {
			failures = append(failures, args[i])
			fmt.Fprintf(out, "%s\tERROR\n", args[i])
			continue
		}
		block4, _ := msg.Block4()
		fmt.Fprintf(out, "%s\tMT%s\t%s\t%d tags\n", args[i], msg.Type(), reference(block4), block4.Len())
	}
	if batchErr != nil {
		return fmt.Errorf("%d message(s) failed (%s): %w", len(failures), strings.Join(failures, ", "), batchErr)
	}
	return nil
}

// reference returns the sender's reference: field 20, or the SEME
// qualifier of 20C in ISO 15022 messages.
func reference(block4 *swiftmt.Block) string {
	if f := swiftmt.FieldIn(block4, "20"); f != nil {
		return f.Value()
	}
	for _, f := range swiftmt.FieldsIn(block4, "20C") {
		if f.Qualifier() == "SEME" {
			return f.Component(2)
		}
	}
	return ""
}
