package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quantumedge/internal/profile"
)

var (
	profileName     string
	profileCategory string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the session profile",
	Long: `Shows the stored profile, or updates it when --name/--category are
given. The profile personalizes assistant greetings and framing; when it
is absent the interactive chat runs its onboarding wizard instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := profile.DefaultPath(cfg.StateDir)

		if profileName != "" || profileCategory != "" {
			current, _, _ := profile.Load(path)
			if profileName != "" {
				current.Name = profileName
			}
			if profileCategory != "" {
				current.Category = profileCategory
			}
			if err := profile.Save(path, current); err != nil {
				return err
			}
			fmt.Printf("✓ Profile saved to %s\n", path)
			return nil
		}

		p, ok, err := profile.Load(path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No profile yet. Run 'qedge' to go through onboarding, or set one with:")
			fmt.Println("  qedge profile --name \"Ada\" --category \"Female\"")
			return nil
		}
		fmt.Printf("Name:     %s\nCategory: %s\n", p.Name, p.Category)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileCmd.Flags().StringVar(&profileCategory, "category", "", "Profile category")
}
