package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finderlab/pfsearch/internal/dict"
	pferrors "github.com/finderlab/pfsearch/internal/errors"
	"github.com/finderlab/pfsearch/internal/output"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Name dictionary tools",
	}
	cmd.AddCommand(newDictCheckCmd())
	cmd.AddCommand(newDictLookupCmd())
	return cmd
}

func newDictCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <shard.tsv>...",
		Short: "Validate dictionary shards",
		Long: `Parse dictionary shards and report entry counts. Malformed lines
are reported with file and line number. With no arguments, checks the
shards named in the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shards := args
			if len(shards) == 0 {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				shards = cfg.Dictionary.Shards
			}
			if len(shards) == 0 {
				return fmt.Errorf("no dictionary shards given or configured")
			}

			out := output.New(cmd.OutOrStdout())
			failed := false
			for _, shard := range shards {
				d := dict.New(shard)
				if err := d.Load(); err != nil {
					out.Errorf("%s: %v", shard, err)
					failed = true
					continue
				}
				out.Successf("%s: %d keys", shard, d.Len())
			}
			if failed {
				return pferrors.ErrDictionaryLoad
			}
			return nil
		},
	}
}

func newDictLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <kanji>...",
		Short: "Look up readings for kanji names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Dictionary.Shards) == 0 {
				return fmt.Errorf("no dictionary shards configured")
			}
			d := dict.New(cfg.Dictionary.Shards...)
			if err := d.Load(); err != nil {
				return pferrors.ErrDictionaryLoad.WithCause(err)
			}

			out := output.New(cmd.OutOrStdout())
			for _, key := range args {
				readings, ok := d.Get(key)
				if !ok {
					out.Dim(fmt.Sprintf("%s: (no readings)", key))
					continue
				}
				for _, reading := range readings {
					out.Printf("%s\t%s\n", key, reading)
				}
			}
			return nil
		},
	}
}
