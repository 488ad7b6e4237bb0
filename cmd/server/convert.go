package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ddb-converter/internal/config"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/orchestrators/conversion"
)

var (
	convertFile     string
	convertID       string
	convertFormat   string
	convertOut      string
	convertFlagFile string
	convertSet      map[string]string
	convertRefresh  bool
	convertTimeout  time.Duration
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a character locally",
	Long: `Convert a D&D Beyond character without running the server.

  convert --file character.json --format fg --out character.xml
  convert --id 12345678 --format foundry --out actor.json
  convert --id https://www.dndbeyond.com/characters/12345678 --set srd_weapon_lookup=true`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFile, "file", "", "character JSON file ('-' for stdin)")
	convertCmd.Flags().StringVar(&convertID, "id", "", "D&D Beyond character id or URL")
	convertCmd.Flags().StringVar(&convertFormat, "format", string(conversion.FormatFantasyGrounds), "output format: fg or foundry")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output file (default stdout)")
	convertCmd.Flags().StringVar(&convertFlagFile, "flags", "", "YAML feature flag file")
	convertCmd.Flags().StringToStringVar(&convertSet, "set", nil, "feature flag override, e.g. weapon_thrown_split=false")
	convertCmd.Flags().BoolVar(&convertRefresh, "refresh", false, "bypass the character cache")
	convertCmd.Flags().DurationVar(&convertTimeout, "timeout", 60*time.Second, "conversion timeout")
	convertCmd.MarkFlagsMutuallyExclusive("file", "id")
	convertCmd.MarkFlagsOneRequired("file", "id")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger(cmd.ErrOrStderr()))

	format, ok := conversion.ParseFormat(convertFormat)
	if !ok {
		return errors.InvalidArgumentf("unknown format %q (expected fg or foundry)", convertFormat)
	}

	flagFile := cfg.FlagsFile
	if convertFlagFile != "" {
		flagFile = convertFlagFile
	}
	fl, err := loadFlags(flagFile, convertSet)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), convertTimeout)
	defer cancel()

	service, err := buildConversionService(ctx, cfg, fl)
	if err != nil {
		return err
	}

	input := &conversion.ConvertInput{
		CharacterID: convertID,
		Formats:     []conversion.Format{format},
		Refresh:     convertRefresh,
	}
	if convertFile != "" {
		input.RawJSON, err = readInput(cmd.InOrStdin(), convertFile)
		if err != nil {
			return err
		}
	}

	out, err := service.Convert(ctx, input)
	if err != nil {
		return fmt.Errorf("%s", errors.UserMessage(err))
	}

	for _, w := range out.Warnings {
		slog.Warn(w, "conversion_id", out.ConversionID)
	}

	var body []byte
	switch format {
	case conversion.FormatFoundry:
		body = out.FoundryJSON
	default:
		body = []byte(out.FantasyGroundsXML)
	}
	if len(body) == 0 {
		return errors.FailedPrecondition("no output produced for format " + string(format))
	}

	return writeOutput(cmd.OutOrStdout(), convertOut, body)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read "+path)
	}
	return data, nil
}

func writeOutput(stdout io.Writer, path string, body []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return errors.Wrap(err, "failed to write "+path)
	}
	return nil
}
