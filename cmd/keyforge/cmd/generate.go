package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cheetahbyte/keyforge/internal/licensecrypto"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		secret   string
		count    int
		version  int
		addons   string
		quantity int
		legacy   bool
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Print serials for a product secret",
		Example: `  keyforge generate --secret s3cret --version 8 --count 10 --addons 1,1,0,0,1
  keyforge generate --secret s3cret --version 6 --quantity 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret is required")
			}
			if quantity < 1 {
				return fmt.Errorf("--quantity must be at least 1, got %d", quantity)
			}
			flags, err := parseAddons(addons)
			if err != nil {
				return err
			}

			gen := licensecrypto.NewGenerator(secret)
			out := cmd.OutOrStdout()
			for i := 0; i < quantity; i++ {
				if legacy {
					fmt.Fprintln(out, gen.GenerateSerial(count, version, flags))
					continue
				}
				s, err := gen.Generate(licensecrypto.Request{Count: count, Version: version, Addons: flags})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s.Key)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&secret, "secret", "s", "", "product secret mixed into the checksum")
	c.Flags().IntVarP(&count, "count", "c", 0, "usage count (versions 6 and above)")
	c.Flags().IntVarP(&version, "version", "v", 8, "protocol version, 0 to 31")
	c.Flags().StringVarP(&addons, "addons", "a", "", "five comma separated addon flags, default all enabled")
	c.Flags().IntVarP(&quantity, "quantity", "n", 1, "number of serials to print")
	c.Flags().BoolVar(&legacy, "legacy", false, "print the failure sentinel instead of an error")
	return c
}

// parseAddons accepts "1,0,1,1,0" or "true,false,...". Empty means defaults.
func parseAddons(s string) ([]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	flags := make([]bool, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseBool(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid addon flag %q: %w", p, err)
		}
		flags[i] = v
	}
	return flags, nil
}
