package cmd

import (
	"fmt"

	"github.com/lepinkainen/mediasort/profile"
	"github.com/lepinkainen/mediasort/types"
	"github.com/lepinkainen/mediasort/ui"
)

type ProfilesCmd struct{}

// Run loads the embedded conversion profile table, which also validates key
// uniqueness, and lists every rule.
func (cmd *ProfilesCmd) Run(appCtx *types.AppContext) error {
	profiles, err := profile.Load()
	if err != nil {
		return fmt.Errorf("conversion profile table is invalid: %w", err)
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("%d conversion profiles", len(profiles))))

	for _, p := range profiles {
		action := "convert"
		if p.IsCopyOnly() {
			action = "copy"
		}
		live := ""
		if p.IsLivePhotoVideo {
			live = " live-photo"
		}
		fmt.Printf("%s\n", ui.ProcessingStyle.Render(p.UseCase))
		fmt.Printf("  %s\n", p.Description)
		fmt.Printf("  key: %s video=%s scan=%s audio=%s%s\n",
			p.OriginalFileExtension, p.VideoFormat, p.VideoScanType, p.AudioFormat, live)
		fmt.Printf("  action: %s -> %s\n", action, p.NewFileExtension)
	}

	return nil
}
