package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/blockrt/internal/codec"
	"github.com/roach88/blockrt/internal/signal"
)

// CodecOptions holds flags for the codec commands.
type CodecOptions struct {
	*RootOptions
	Specs []string
}

// CodecResult is the output of pack and unpack. Values are formatted so
// NaN and infinities survive JSON.
type CodecResult struct {
	Layout []string `json:"layout"`
	Hex    string   `json:"hex"`
	Values []string `json:"values"`
}

// NewCodecCommand creates the codec command and its pack/unpack children.
func NewCodecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CodecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "codec",
		Short: "Pack and unpack byte messages",
		Long: `Encode values into the byte layout BytesPack and bus blocks use, or
decode such a message back into values.

A layout is 1 to 8 TYPE:ORDER fields, e.g. F32:LittleEndian,U16:BigEndian.
Integer fields truncate toward zero and saturate at their range.`,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.Specs, "spec", nil, "field layout, TYPE:ORDER (repeatable or comma separated)")
	_ = cmd.MarkPersistentFlagRequired("spec")

	pack := &cobra.Command{
		Use:   "pack <value>...",
		Short: "Pack values into a hex message",
		Example: `  blockrt codec pack --spec F32:LittleEndian,U16:BigEndian 1.5 300
  blockrt codec pack --spec I8:BigEndian -- -3`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(opts, args, cmd)
		},
	}

	unpack := &cobra.Command{
		Use:           "unpack <hex>",
		Short:         "Unpack a hex message into values",
		Example:       `  blockrt codec unpack --spec F32:LittleEndian,U16:BigEndian 0000c03f012c`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(pack, unpack)
	return cmd
}

func runPack(opts *CodecOptions, args []string, cmd *cobra.Command) error {
	layout, err := codec.ParseLayout(opts.Specs)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid layout", err)
	}
	if len(args) != len(layout) {
		return NewExitError(ExitCommandError, fmt.Sprintf("layout has %d field(s), got %d value(s)", len(layout), len(args)))
	}

	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("value %d", i), err)
		}
		values[i] = v
	}

	msg := layout.Append(nil, values)
	// Report what the receiver will decode, not what was asked for.
	decoded := make([]float64, len(layout))
	layout.Unpack(msg, decoded)

	return outputCodec(opts, cmd, CodecResult{
		Layout: layout.Strings(),
		Hex:    hex.EncodeToString(msg),
		Values: formatValues(decoded),
	}, true)
}

func runUnpack(opts *CodecOptions, arg string, cmd *cobra.Command) error {
	layout, err := codec.ParseLayout(opts.Specs)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid layout", err)
	}
	msg, err := hex.DecodeString(strings.TrimSpace(arg))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid hex message", err)
	}

	values := make([]float64, len(layout))
	if !layout.Unpack(msg, values) {
		return NewExitError(ExitFailure, fmt.Sprintf("message too short: layout needs %d byte(s), got %d", layout.Size(), len(msg)))
	}

	return outputCodec(opts, cmd, CodecResult{
		Layout: layout.Strings(),
		Hex:    hex.EncodeToString(msg),
		Values: formatValues(values),
	}, false)
}

func outputCodec(opts *CodecOptions, cmd *cobra.Command, result CodecResult, packed bool) error {
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if packed {
		fmt.Fprintln(w, result.Hex)
		return nil
	}
	fmt.Fprintln(w, strings.Join(result.Values, " "))
	return nil
}

func formatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = signal.FormatFloat(v)
	}
	return out
}
