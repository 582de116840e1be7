package sitegen

// PackageFile is the npm manifest handled by PackageRewriter.
const PackageFile = "package.json"

// templateFiles are the template-relative files known to carry placeholders.
var templateFiles = []string{
	"src/pages/index.astro",
	"src/pages/about.astro",
	"src/pages/adopt.astro",
	"src/pages/donate.astro",
	"src/pages/contact.astro",
	"src/pages/volunteer.astro",
	"src/pages/404.astro",
	"src/layouts/Layout.astro",
	"src/layouts/BaseLayout.astro",
	"src/data/site.json",
	"src/data/navigation.json",
	"src/styles/global.css",
	"astro.config.mjs",
	"tailwind.config.mjs",
	"public/admin/config.yml",
	"README.md",
}

// assetDirs are copied byte for byte without substitution.
var assetDirs = []string{
	"public",
	"src/assets",
	"src/components",
	"src/content",
	"src/icons",
	"src/js",
}

// Layout names the template files and asset directories of a template tree.
// Paths are slash-separated and relative to the template root.
type Layout struct {
	TemplateFiles []string
	AssetDirs     []string
	PackageFile   string
}

// DefaultLayout returns the compiled-in layout of the rescue-site template.
func DefaultLayout() Layout {
	return Layout{
		TemplateFiles: append([]string(nil), templateFiles...),
		AssetDirs:     append([]string(nil), assetDirs...),
		PackageFile:   PackageFile,
	}
}
