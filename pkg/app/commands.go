package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/flowershop/pkg/migration"
)

// Migrate runs every pending migration.
func (a *Application) Migrate(out io.Writer) error {
	return migration.New(a.db).WithOutput(out).Run()
}

// Rollback reverses the last migration batch.
func (a *Application) Rollback(out io.Writer) error {
	return migration.New(a.db).WithOutput(out).Rollback()
}

// MigrationStatus prints which migrations have run.
func (a *Application) MigrationStatus(out io.Writer) error {
	return migration.New(a.db).WithOutput(out).Status()
}

// RouteList prints every route the kernel mounts. It needs no database.
func (a *Application) RouteList(out io.Writer) error {
	r, err := a.Kernel()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range r.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
