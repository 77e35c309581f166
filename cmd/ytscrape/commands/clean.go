package commands

import (
	"log/slog"

	"opinionlens-backend/internal/dataset"
	"opinionlens-backend/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	cleanIn       *string
	cleanOut      *string
	cleanSplit    *float64
	cleanSeed     *int64
	cleanTrainOut *string
	cleanTestOut  *string
)

func init() {
	cleanIn = cleanCmd.Flags().String("in", "data/youtube_comments.csv", "Scraped CSV to clean.")
	cleanOut = cleanCmd.Flags().String("out", "data/clean_comments.csv", "Cleaned CSV path.")
	cleanSplit = cleanCmd.Flags().Float64("split", 0, "Test fraction for a train/test split, 0 disables splitting.")
	cleanSeed = cleanCmd.Flags().Int64("seed", 42, "Shuffle seed for the split.")
	cleanTrainOut = cleanCmd.Flags().String("train-out", "data/train.csv", "Train split CSV path.")
	cleanTestOut = cleanCmd.Flags().String("test-out", "data/test.csv", "Test split CSV path.")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean [--in <csv>] [--out <csv>] [--split 0.2]",
	Short: "Cleans comment text for the dataset pipeline and optionally splits train/test.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := dataset.CleanFile(*cleanIn, *cleanOut)
		if err != nil {
			serviceutil.Fatal("failed to clean", err)
		}
		slog.Info("cleaned", "kept", res.Kept, "dropped", res.Dropped, "out", *cleanOut)

		if *cleanSplit == 0 {
			return
		}
		trainN, testN, err := dataset.SplitFile(*cleanOut, *cleanTrainOut, *cleanTestOut, *cleanSplit, *cleanSeed)
		if err != nil {
			serviceutil.Fatal("failed to split", err)
		}
		slog.Info("split", "train", trainN, "test", testN)
	},
}
