package profile

// builtinGroups are the groups shipped with the tool.
func builtinGroups() map[string]Group {
	return map[string]Group{
		"development": {
			Description: "Core development tooling",
			Packages:    []string{"git", "neovim", "docker", "base-devel", "ripgrep", "fd"},
			Optional:    []string{"delta", "github-cli", "lazygit"},
		},
		"media": {
			Description: "Media playback and editing",
			Packages:    []string{"vlc", "obs-studio", "gimp", "ffmpeg"},
			Optional:    []string{"handbrake", "audacity"},
		},
		"gaming": {
			Description: "Gaming platforms and runtimes",
			Packages:    []string{"steam", "lutris", "wine", "gamemode"},
			Optional:    []string{"mangohud", "discord"},
		},
	}
}

// builtinProfiles compose the built-in groups into ready-made setups.
func builtinProfiles() map[string]Profile {
	return map[string]Profile{
		"developer": {
			Description: "Software development workstation",
			Groups:      []string{"development"},
			Additional:  []string{"visual-studio-code-bin", "lazygit"},
		},
		"content-creator": {
			Description: "Audio and video production",
			Groups:      []string{"media"},
			Additional:  []string{"audacity", "kdenlive"},
		},
		"gamer": {
			Description: "Gaming setup",
			Groups:      []string{"gaming"},
			Additional:  []string{"discord"},
		},
	}
}
