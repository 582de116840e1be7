package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitestamp/internal/sitegen"
	"git.home.luguber.info/inful/sitestamp/internal/tokens"
)

// TokensCmd implements 'process-template tokens <config>'.
type TokensCmd struct {
	Config string   `arg:"" help:"Organization configuration file (JSON or YAML)" type:"path"`
	Set    []string `name:"set" help:"Override configuration values (dotted.path=value)"`
}

func (t *TokensCmd) Run(g *Global, _ *CLI) error {
	overrides, err := SiteFlags{Set: t.Set}.overrides()
	if err != nil {
		return err
	}
	doc, err := sitegen.LoadDocument(t.Config, overrides)
	if err != nil {
		return err
	}
	out := g.stdout()
	for _, e := range tokens.Extract(doc.Root()).Entries() {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", e.Key, e.Value)
	}
	return nil
}
