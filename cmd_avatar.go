package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akshaysalvi/portfolio/internal/avatar"
	"github.com/akshaysalvi/portfolio/internal/bootstrap"
	"github.com/akshaysalvi/portfolio/internal/config"
	"github.com/akshaysalvi/portfolio/internal/logger"
)

var avatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Render the placeholder avatar to a JPEG file",
	Long: `Render a solid background with a centered label and write it as JPEG.

Defaults come from the AVATAR_* environment variables. An existing file is
left alone unless --force is given.`,
	RunE: runAvatar,
}

func init() {
	avatarCmd.Flags().String("label", "", "Text drawn on the avatar (default AVATAR_LABEL)")
	avatarCmd.Flags().Int("size", 0, "Canvas width and height in pixels (default AVATAR_SIZE)")
	avatarCmd.Flags().String("bg", "", "Background color as hex (default AVATAR_BACKGROUND)")
	avatarCmd.Flags().String("fg", "", "Text color as hex (default AVATAR_FOREGROUND)")
	avatarCmd.Flags().String("shape", "", "square or circle (default AVATAR_SHAPE)")
	avatarCmd.Flags().StringP("out", "o", "", "Output path (default PLACEHOLDER_PATH)")
	avatarCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runAvatar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	req := cfg.AvatarRequest()
	flags := cmd.Flags()
	if flags.Changed("label") {
		req.Label, _ = flags.GetString("label")
	}
	if flags.Changed("size") {
		req.Size, _ = flags.GetInt("size")
	}
	if flags.Changed("bg") {
		s, _ := flags.GetString("bg")
		if req.Background, err = avatar.ParseHex(s); err != nil {
			return fmt.Errorf("--bg: %w", err)
		}
	}
	if flags.Changed("fg") {
		s, _ := flags.GetString("fg")
		if req.Foreground, err = avatar.ParseHex(s); err != nil {
			return fmt.Errorf("--fg: %w", err)
		}
	}
	if flags.Changed("shape") {
		s, _ := flags.GetString("shape")
		req.Shape = avatar.ParseShape(s)
	}
	out := cfg.PlaceholderPath
	if flags.Changed("out") {
		out, _ = flags.GetString("out")
	}
	force, _ := flags.GetBool("force")

	gen := avatar.New(
		avatar.WithSources(avatar.SourcesFromPaths(cfg.AvatarFontPaths)...),
		avatar.WithMaxPixels(cfg.MaxAvatarPixels()),
		avatar.WithLogger(log),
	)

	var res bootstrap.Result
	if force {
		res, err = bootstrap.WritePlaceholder(gen, req, out)
	} else {
		res, err = bootstrap.EnsurePlaceholder(gen, req, out, log)
	}
	if err != nil {
		return err
	}

	if res.Created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%dx%d, %s, %d bytes)\n", res.Path, req.Size, req.Size, res.Font, res.Bytes)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists; use --force to overwrite\n", res.Path)
	}
	return nil
}
