// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the rigrun pages.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. Theme bundles the styles used by the debug, language and settings
pages:

	theme := styles.NewTheme()
	title := theme.Title.Render("rigrun Debug")

The download button switches from Button to ButtonSaved once the snapshot
has been written.
*/
package styles
