package main

import (
	"github.com/spf13/cobra"

	"longconv/internal/pipeline"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] [input [output]]",
	Short: "Encode signed 64-bit integers back into byte records",
	Long: `Read values (text or msgpack, see --format) and write each one as eight
little-endian byte values on its own line. Paths default to the config output
and input respectively.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingle(cmd, args, pipeline.Reverse)
	},
}

func init() {
	addConvertFlags(encodeCmd)
}
