package dotfiler

import (
	"embed"

	"github.com/arthur-debert/dotfiler/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// initTopics installs the help command with the embedded topics. Markdown
// is rendered with glamour on a terminal and printed as-is otherwise.
func initTopics(rootCmd *cobra.Command) {
	opts := topics.Options{Extensions: []string{".md", ".txt"}}
	if stdoutIsTerminal() {
		opts.Renderer = topics.NewGlamourRenderer()
	}

	if _, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}
