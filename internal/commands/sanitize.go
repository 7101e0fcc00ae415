package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newSanitizeCommand(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sanitize [file]",
		Short: "Redact sensitive fields from a JSON or YAML document",
		Long: "Redact sensitive fields from a JSON or YAML document read from file or stdin.\n" +
			"The format follows the file extension unless --format is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, log, err := g.setup(cmd, zeroTime)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var (
				in   io.Reader = cmd.InOrStdin()
				name string
			)
			if len(args) == 1 && args[0] != "-" {
				name = args[0]
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("opening %s: %w", name, err)
				}
				defer f.Close()
				in = f
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			s := e.Sanitizer()
			var out []byte
			switch f := documentFormat(format, name); f {
			case "json":
				out, err = s.SanitizeJSON(data)
			case "yaml":
				out, err = s.SanitizeYAML(data)
			default:
				return fmt.Errorf("unsupported format %q (want json or yaml)", f)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: json or yaml")

	return cmd
}

func documentFormat(flag, name string) string {
	if flag != "" {
		f := strings.ToLower(flag)
		if f == "yml" {
			return "yaml"
		}
		return f
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
