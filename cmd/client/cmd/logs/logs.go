package logs

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storesync/internal/app/client"
)

var (
	storeID    int64
	onlyErrors bool
)

var LogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Журнал операций синхронизации",
	Long: `Просмотр журнала операций синхронизации магазина.

Журнал только дополняется: записи не редактируются и не удаляются.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if storeID <= 0 {
			return fmt.Errorf("укажите магазин: --store")
		}

		entries, err := app.QueryLogs(cmd.Context(), storeID, onlyErrors)
		if err != nil {
			return fmt.Errorf("ошибка получения журнала: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("ошибка сериализации журнала: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(entries) == 0 {
			fmt.Println("Записи не найдены")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tОперация\tСтатус\tДлительность\tВремя\tОшибка\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t\n")

		for _, e := range entries {
			status := "✓"
			if !e.IsSuccess {
				status = "✗"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d мс\t%s\t%s\t\n",
				e.ID,
				e.Operation,
				status,
				e.DurationMs,
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.ErrorMessage,
			)
		}

		w.Flush()
		fmt.Printf("\nВсего записей: %d\n", len(entries))

		return nil
	},
}

func init() {
	LogsCmd.Flags().Int64VarP(&storeID, "store", "s", 0, "идентификатор магазина")
	LogsCmd.Flags().BoolVar(&onlyErrors, "errors", false, "только записи об ошибках")
}
