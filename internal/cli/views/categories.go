package views

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifegrid/internal/categories"
	"github.com/julianstephens/lifegrid/internal/cli"
)

type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(ctx *cli.Context) error {
	fmt.Print(RenderCategories())
	return nil
}

// RenderCategories lists every code with its label and color.
func RenderCategories() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n\n")
	for _, cat := range categories.All() {
		fmt.Fprintf(&b, "  %2d  %s  %s\n", cat.Code, swatch(cat.Code, 2), cat.Label)
	}
	return b.String()
}
