package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/commupath/commupath/internal/model"
	"github.com/commupath/commupath/internal/verify"
)

var (
	verifyImage       string
	verifyTitle       string
	verifyDescription string
	verifyCategory    string
	verifyNote        string
	verifyTimeout     time.Duration
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify photographic proof of quest completion",
	Long: `Verify sends a proof image plus the quest context to the vision service
and reports a calibrated confidence, a Verified/Unclear/Rejected verdict,
reasoning, and a suggested point award. Verification never fails hard: if
the service is unavailable the outcome is Unclear with zero points.

Example:
  commupath verify --image proof.jpg --title "Clean Up Agodi Gardens" \
    --description "Organize a community cleanup..." --category Environment \
    --note "We filled 12 bags of litter"`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyImage, "image", "", "path to the proof image")
	verifyCmd.Flags().StringVar(&verifyTitle, "title", "", "quest title")
	verifyCmd.Flags().StringVar(&verifyDescription, "description", "", "quest description")
	verifyCmd.Flags().StringVar(&verifyCategory, "category", "", "quest category")
	verifyCmd.Flags().StringVar(&verifyNote, "note", "", "optional description from the submitter")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "verification timeout")

	_ = verifyCmd.MarkFlagRequired("image")
	_ = verifyCmd.MarkFlagRequired("title")
	_ = verifyCmd.MarkFlagRequired("description")
	_ = verifyCmd.MarkFlagRequired("category")
}

func runVerify(cmd *cobra.Command, args []string) error {
	category, err := model.ParseCategory(verifyCategory)
	if err != nil {
		return err
	}

	image, err := os.ReadFile(verifyImage)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	cfg := loadConfig()
	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
	defer cancel()

	verifier := verify.NewVerifier(buildProvider(ctx, cfg, logger), logger)

	outcome := verifier.Verify(ctx, verify.Proof{
		Image:            image,
		MIMEType:         mimeTypeFor(verifyImage),
		QuestTitle:       verifyTitle,
		QuestDescription: verifyDescription,
		QuestCategory:    category,
		UserNote:         verifyNote,
	})

	fmt.Println(mustJSON(outcome))
	return nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
