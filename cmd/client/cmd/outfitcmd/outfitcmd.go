package outfitcmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dresscode/cmd/client/cmd/types"
	"dresscode/cmd/client/cmd/view"
	"dresscode/internal/app"
)

var OutfitCmd = &cobra.Command{
	Use:   "outfit",
	Short: "Inspect and manage single outfits",
}

var GetCmd = &cobra.Command{
	Use:   "get <outfit-id>",
	Short: "Show one outfit with all its images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}
		jsonOut, _ := cmd.Context().Value(types.JSONKey).(bool)

		detail, err := a.Repo.FetchOutfitDetail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch outfit: %w", err)
		}
		return view.Detail(detail, jsonOut)
	},
}

var UploadCmd = &cobra.Command{
	Use:   "upload <image-file>",
	Short: "Upload your own outfit image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		filename := filepath.Base(args[0])
		mimeType := mime.TypeByExtension(filepath.Ext(filename))

		preview, err := a.Repo.UploadOutfit(cmd.Context(), data, filename, mimeType)
		if err != nil {
			return fmt.Errorf("upload outfit: %w", err)
		}
		fmt.Printf("Uploaded %s as %s\n", filename, preview.ID)
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <outfit-id>",
	Short: "Delete one of your uploaded outfits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := cmd.Context().Value(types.AppKey).(*app.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		if err := a.Repo.DeleteOutfit(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete outfit: %w", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}
