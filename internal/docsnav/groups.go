// Package docsnav renders the global sidebar navigation of the documentation site and
// injects it into generated pages.
package docsnav

// Link is a navigation entry. Href is relative to the docs root and may carry a fragment.
type Link struct {
	Label string
	Href  string
}

// Group is a top-level navigation entry: either a plain link (Href set) or a collapsible
// group of child links.
type Group struct {
	Title    string
	Href     string
	Children []Link
}

const (
	setupPage    = "/getting-started/setup-and-first-spawn/"
	modulesPage  = "/modules/free-modules/"
	patternsPage = "/patterns/basic-patterns/"
	extendPage   = "/extending/write-your-own-modules/"
	paidPage     = "/paid-version/"
)

// Groups is the sidebar tree, in display order.
var Groups = []Group{
	{Title: "Intro", Href: "/"},
	{
		Title: "Setup",
		Children: []Link{
			{"Install the package", setupPage + "#1-install-the-package"},
			{"Create a spawner object", setupPage + "#2-create-a-spawner-object"},
			{"Make it visible", setupPage + "#3-make-it-visible"},
			{"Configure the basics", setupPage + "#4-configure-the-basics"},
			{"Fire", setupPage + "#5-fire"},
			{"Manual spawning", setupPage + "#manual-spawning"},
			{"Troubleshooting", setupPage + "#troubleshooting"},
		},
	},
	{
		Title: "Free Modules",
		Children: []Link{
			{"How modules work", modulesPage + "#how-modules-work"},
			{"The modules", modulesPage + "#the-modules"},
			{"Performance tips", modulesPage + "#performance-tips"},
		},
	},
	{
		Title: "Patterns",
		Children: []Link{
			{"Straight stream", patternsPage + "#1-straight-stream"},
			{"Radial burst", patternsPage + "#2-radial-burst"},
			{"Rotating spiral", patternsPage + "#3-rotating-spiral"},
			{"Wave stream", patternsPage + "#4-wave-stream"},
			{"Hold and release", patternsPage + "#5-hold-release"},
			{"Shotgun blast", patternsPage + "#6-shotgun-blast"},
			{"Tuning tips", patternsPage + "#tuning-tips"},
		},
	},
	{
		Title: "Write Your Own Modules",
		Children: []Link{
			{"How it works", extendPage + "#how-it-works"},
			{"Choose your interface", extendPage + "#choose-your-weapon-interface"},
			{"Examples", extendPage + "#example-1-making-bullets-drift-sideways"},
			{"Performance note", extendPage + "#a-note-on-performance-parallel-vs-main-thread"},
		},
	},
	{
		Title: "Paid Version",
		Children: []Link{
			{"Why upgrade", paidPage + "#why-upgrade"},
			{"Free vs Pro", paidPage + "#free-vs-pro-whats-the-difference"},
		},
	},
}
