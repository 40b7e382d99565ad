package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fusion-studio",
	Short: "Gemini image fusion studio",
	Long: `fusion-studio は Gemini の画像モデルで画像を生成・合成するコマンドです。

モードを選び、必要なら参照画像を渡し、指示文を添えて 1 回だけ生成します。

Examples:
  fusion-studio generate -m text-to-image -p "a majestic lion wearing a crown"
  fusion-studio generate -m multi-image -i img1.png -i img2.jpg -p "merge these"
  fusion-studio generate -m figurine -i me.png -o figurine.png
  fusion-studio modes`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modesCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().String("locale", "", "Display locale (zh-TW, en). Overrides FUSION_LOCALE")
}
