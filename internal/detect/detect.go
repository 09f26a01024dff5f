// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

// =============================================================================
// PROBE
// =============================================================================

// Probe inspects the local machine. Every field is injectable so tests can
// describe a platform without touching the real one.
type Probe struct {
	GOOS   string
	GOARCH string

	Getenv     func(string) string
	LookPath   func(string) (string, error)
	IsTerminal func(fd int) bool
	StdoutFd   int

	ColorProfile         func() termenv.Profile
	ClipboardUnsupported bool
}

// NewProbe returns a Probe wired to the running process.
func NewProbe() *Probe {
	return &Probe{
		GOOS:                 runtime.GOOS,
		GOARCH:               runtime.GOARCH,
		Getenv:               os.Getenv,
		LookPath:             exec.LookPath,
		IsTerminal:           term.IsTerminal,
		StdoutFd:             int(os.Stdout.Fd()),
		ColorProfile:         termenv.ColorProfile,
		ClipboardUnsupported: clipboard.Unsupported,
	}
}

func (p *Probe) getenv(k string) string {
	if p.Getenv == nil {
		return ""
	}
	return p.Getenv(k)
}

func (p *Probe) has(bin string) bool {
	if p.LookPath == nil {
		return false
	}
	_, err := p.LookPath(bin)
	return err == nil
}

// =============================================================================
// CLIENT
// =============================================================================

// OS flags the operating system family.
type OS struct {
	Linux   bool   `json:"linux"`
	MacOS   bool   `json:"macOS"`
	Windows bool   `json:"windows"`
	Name    string `json:"name"`
	Arch    string `json:"arch"`
}

// Is describes where rigrun is running.
type Is struct {
	OS       OS     `json:"os"`
	Terminal string `json:"terminal,omitempty"`
	Remote   bool   `json:"remote"`
	Desktop  bool   `json:"desktop"`
}

// Client is the client section of the debug snapshot.
type Client struct {
	Is                     Is     `json:"Is"`
	SystemLang             string `json:"systemLang,omitempty"`
	IsTTY                  bool   `json:"isTTY"`
	SupportsClipboardPaste bool   `json:"supportsClipboardPaste"`
	SupportsScreenCapture  bool   `json:"supportsScreenCapture"`
	ColorProfile           string `json:"colorProfile"`
}

// Client probes the client environment.
func (p *Probe) Client() Client {
	remote := p.getenv("SSH_CONNECTION") != "" || p.getenv("SSH_TTY") != ""

	c := Client{
		Is: Is{
			OS: OS{
				Linux:   p.GOOS == "linux",
				MacOS:   p.GOOS == "darwin",
				Windows: p.GOOS == "windows",
				Name:    p.GOOS,
				Arch:    p.GOARCH,
			},
			Terminal: p.terminalName(),
			Remote:   remote,
			Desktop:  !remote && p.hasDisplay(),
		},
		SystemLang:             p.SystemLanguage(),
		SupportsClipboardPaste: !p.ClipboardUnsupported,
		SupportsScreenCapture:  p.screenCaptureTool() != "",
		ColorProfile:           "ascii",
	}
	if p.IsTerminal != nil {
		c.IsTTY = p.IsTerminal(p.StdoutFd)
	}
	if p.ColorProfile != nil {
		c.ColorProfile = ProfileName(p.ColorProfile())
	}
	return c
}

func (p *Probe) terminalName() string {
	if v := p.getenv("TERM_PROGRAM"); v != "" {
		return v
	}
	if p.getenv("WT_SESSION") != "" {
		return "Windows Terminal"
	}
	return p.getenv("TERM")
}

func (p *Probe) hasDisplay() bool {
	switch p.GOOS {
	case "darwin", "windows":
		return true
	default:
		return p.getenv("DISPLAY") != "" || p.getenv("WAYLAND_DISPLAY") != ""
	}
}

// screenCaptureTool returns the first screenshot utility found.
func (p *Probe) screenCaptureTool() string {
	var tools []string
	switch p.GOOS {
	case "darwin":
		tools = []string{"screencapture"}
	case "windows":
		return ""
	default:
		if !p.hasDisplay() {
			return ""
		}
		tools = []string{"grim", "gnome-screenshot", "spectacle", "scrot", "import"}
	}
	for _, t := range tools {
		if p.has(t) {
			return t
		}
	}
	return ""
}

// ProfileName maps a termenv profile to a short label.
func ProfileName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

// =============================================================================
// SYSTEM LANGUAGE
// =============================================================================

// SystemLanguage returns the BCP 47 tag of the user's locale, or "" when the
// environment names none (or only the C/POSIX locale).
func (p *Probe) SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag, ok := ParseLocale(p.getenv(key)); ok {
			return tag
		}
	}
	if list := p.getenv("LANGUAGE"); list != "" {
		first, _, _ := strings.Cut(list, ":")
		if tag, ok := ParseLocale(first); ok {
			return tag
		}
	}
	return ""
}

// ParseLocale converts a POSIX locale such as "pt_BR.UTF-8@euro" to a
// canonical BCP 47 tag ("pt-BR").
func ParseLocale(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
