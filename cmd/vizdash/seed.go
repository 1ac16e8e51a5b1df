package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vizdash/internal/adapter/events"
	"vizdash/internal/domain/record"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Load records from a JSON export into the store",
	Long:  "Reads a JSON array of records, or an object with a data array, inserts them into the configured store and announces the change on the event bus.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return eris.Wrapf(err, "open %s", args[0])
		}
		defer f.Close()

		records, err := decodeSeed(f)
		if err != nil {
			return err
		}

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		bus, err := initBus(cfg.NATS)
		if err != nil {
			return err
		}
		defer bus.Close()

		n, err := seed(ctx, st, bus, records)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d records\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type recordInserter interface {
	InsertMany(ctx context.Context, records []record.Record) (int, error)
}

// seed inserts records and publishes dataset.updated. A failed publish is
// logged; the records are already stored.
func seed(ctx context.Context, st recordInserter, bus events.Bus, records []record.Record) (int, error) {
	n, err := st.InsertMany(ctx, records)
	if err != nil {
		return 0, eris.Wrap(err, "seed: insert")
	}

	if err := bus.PublishDatasetUpdated(ctx, events.DatasetUpdated{Source: "seed", Inserted: n}); err != nil {
		zap.L().Warn("failed to publish dataset update", zap.Error(err))
	}

	zap.L().Info("seed complete", zap.Int("inserted", n))
	return n, nil
}

// decodeSeed accepts either a bare array of records or {"data": [...]}
func decodeSeed(r io.Reader) ([]record.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "seed: read")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, eris.Wrap(record.ErrInvalid, "seed: empty input")
	}

	if raw[0] == '[' {
		var records []record.Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, eris.Wrapf(record.ErrInvalid, "seed: malformed array: %v", err)
		}
		return records, nil
	}

	var body struct {
		Data []record.Record `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, eris.Wrapf(record.ErrInvalid, "seed: malformed document: %v", err)
	}
	if body.Data == nil {
		return nil, eris.Wrap(record.ErrInvalid, "seed: no data array")
	}
	return body.Data, nil
}
