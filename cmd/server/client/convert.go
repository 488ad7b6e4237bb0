package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ddb-converter/internal/handlers/converter/v1alpha1"
)

var (
	formats []string
	refresh bool
	outFile string
)

var convertCmd = &cobra.Command{
	Use:   "convert [character-id]",
	Short: "Convert a character through the server",
	Long: `Convert a D&D Beyond character by id or URL. Examples:

  convert 12345678
  convert 12345678 --format fg --format foundry
  convert https://www.dndbeyond.com/characters/12345678 --out character.xml`,
	Args: cobra.ExactArgs(1),
	RunE: convert,
}

func init() {
	convertCmd.Flags().StringArrayVar(&formats, "format", []string{"fg"}, "output format (repeatable): fg, foundry")
	convertCmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the server cache")
	convertCmd.Flags().StringVar(&outFile, "out", "", "write the Fantasy Grounds XML to this file")
}

func convert(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createConverterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	formatValues := make([]any, 0, len(formats))
	for _, f := range formats {
		formatValues = append(formatValues, f)
	}
	req, err := structpb.NewStruct(map[string]any{
		v1alpha1.FieldCharacterID: args[0],
		v1alpha1.FieldFormats:     formatValues,
		v1alpha1.FieldRefresh:     refresh,
	})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Convert(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to convert character: %w", err)
	}
	fields := resp.GetFields()

	fmt.Printf("Conversion %s\n", fields[v1alpha1.FieldConversionID].GetStringValue())
	fmt.Printf("  Character: %s (%s)\n",
		fields[v1alpha1.FieldCharacterName].GetStringValue(),
		fields[v1alpha1.FieldCharacterID].GetStringValue())
	fmt.Printf("  Source:    %s\n", fields[v1alpha1.FieldSource].GetStringValue())
	for _, w := range fields[v1alpha1.FieldWarnings].GetListValue().GetValues() {
		fmt.Printf("  Warning:   %s\n", w.GetStringValue())
	}

	xml := fields[v1alpha1.FieldFantasyGrounds].GetStringValue()
	if outFile != "" && xml != "" {
		if err := os.WriteFile(outFile, []byte(xml), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		fmt.Printf("  Wrote %s\n", outFile)
	}

	return nil
}
