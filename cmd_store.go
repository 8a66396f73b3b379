package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/store"
)

var (
	exportPath    string
	clearCustomer bool
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"tpl"},
	Short:   "Manage saved email templates",
	RunE:    runTemplatesList,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save a form file as a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesSave,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a template laid over the default form as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *store.Store) error {
			return st.DeleteTemplate(cmd.Context(), args[0])
		})
	},
}

var templatesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every template to a backup file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportTo(cmd, store.TemplatesExportFile, "templates", func(st *store.Store, w io.Writer) (int, error) {
			return st.ExportTemplates(cmd.Context(), w)
		})
	},
}

var templatesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the saved templates with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importFrom(cmd, args[0], "templates", func(st *store.Store, r io.Reader) (int, error) {
			return st.ImportTemplates(cmd.Context(), r)
		})
	},
}

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage recipient lists for campaigns",
	RunE:  runListsList,
}

var listsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipient lists",
	Args:  cobra.NoArgs,
	RunE:  runListsList,
}

var listsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty recipient list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *store.Store) error {
			l, err := st.CreateList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s)\n", l.Name, l.ID)
			return nil
		})
	},
}

var listsAddCmd = &cobra.Command{
	Use:   "add LIST [FILE]",
	Short: "Add recipients from a CSV or pasted text file",
	Long: `Reads one recipient per line as "email, first name, policy holder" and
adds those not already on the list. Reads stdin when FILE is - or omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runListsAdd,
}

var listsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a recipient list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *store.Store) error {
			return st.DeleteList(cmd.Context(), args[0])
		})
	},
}

var listsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every recipient list to a backup file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportTo(cmd, store.ListsExportFile, "lists", func(st *store.Store, w io.Writer) (int, error) {
			return st.ExportLists(cmd.Context(), w)
		})
	},
}

var listsImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the recipient lists with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importFrom(cmd, args[0], "lists", func(st *store.Store, r io.Reader) (int, error) {
			return st.ImportLists(cmd.Context(), r)
		})
	},
}

func init() {
	templatesSaveCmd.Flags().StringVarP(&formPath, "form", "f", "", "Form YAML file (- for stdin)")
	templatesSaveCmd.Flags().BoolVar(&clearCustomer, "clear-customer", true, "Blank customer details before saving")
	templatesSaveCmd.MarkFlagRequired("form")

	for _, c := range []*cobra.Command{templatesExportCmd, listsExportCmd} {
		c.Flags().StringVarP(&exportPath, "output", "o", "", "Backup file (default in the output directory)")
	}

	templatesCmd.AddCommand(templatesListCmd, templatesSaveCmd, templatesShowCmd, templatesDeleteCmd,
		templatesExportCmd, templatesImportCmd)
	listsCmd.AddCommand(listsListCmd, listsCreateCmd, listsAddCmd, listsDeleteCmd,
		listsExportCmd, listsImportCmd)
}

// withStore runs fn against the configured store without connecting the AI.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	e, err := newEnv(cmd.Context(), false, "")
	if err != nil {
		return err
	}
	defer e.close()
	return fn(e.store)
}

func savedAt(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		ts, err := st.Templates(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSAVED")
		for _, t := range ts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, savedAt(t.SavedAt))
		}
		return tw.Flush()
	})
}

func runTemplatesSave(cmd *cobra.Command, args []string) error {
	d, err := loadForm(formPath)
	if err != nil {
		return err
	}
	return withStore(cmd, func(st *store.Store) error {
		t, err := st.SaveTemplate(cmd.Context(), args[0], d, clearCustomer)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s)\n", t.Name, t.ID)
		return nil
	})
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		d, err := st.LoadTemplate(cmd.Context(), args[0], form.Defaults())
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(d)
	})
}

func runListsList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		ls, err := st.Lists(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tRECIPIENTS\tSAVED")
		for _, l := range ls {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.ID, l.Name, len(l.Recipients), savedAt(l.SavedAt))
		}
		return tw.Flush()
	})
}

func runListsAdd(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 2 && args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	rs, err := store.ParseRecipients(in)
	if err != nil {
		return err
	}
	return withStore(cmd, func(st *store.Store) error {
		l, err := st.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		n, err := st.AddRecipients(cmd.Context(), l.ID, rs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d recipient(s) to %q\n", n, len(rs), l.Name)
		return nil
	})
}

func exportTo(cmd *cobra.Command, name, what string, fn func(*store.Store, io.Writer) (int, error)) error {
	e, err := newEnv(cmd.Context(), false, "")
	if err != nil {
		return err
	}
	defer e.close()

	var n int
	write := func(w io.Writer) error {
		var err error
		n, err = fn(e.store, w)
		return err
	}
	path := exportPath
	if path == "" {
		path, err = e.out.Write(name, write)
	} else {
		err = writeFile(path, write)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", n, what, path)
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func importFrom(cmd *cobra.Command, path, what string, fn func(*store.Store, io.Reader) (int, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return withStore(cmd, func(st *store.Store) error {
		n, err := fn(st, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s\n", n, what)
		return nil
	})
}
