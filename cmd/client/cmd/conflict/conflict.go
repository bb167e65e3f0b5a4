package conflict

import (
	"fmt"

	"github.com/spf13/cobra"

	"storesync/internal/app/client"
)

var (
	conflictID int64
	winner     string
	notes      string
	bulkIDs    []int64
)

var ConflictCmd = &cobra.Command{
	Use:   "conflict",
	Short: "Разрешение конфликтов синхронизации",
	Long: `Просмотр и разрешение конфликтов: ситуаций, когда одна сущность
была независимо изменена и в центральном офисе, и в магазине.

Конфликт разрешается ровно один раз; повторное разрешение отклоняется.`,
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список неразрешенных конфликтов",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		conflicts, err := app.ListConflicts(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения конфликтов: %w", err)
		}

		if len(conflicts) == 0 {
			fmt.Println("✅ Неразрешенных конфликтов нет")
			return nil
		}

		fmt.Printf("Неразрешенных конфликтов: %d\n\n", len(conflicts))
		for _, c := range conflicts {
			fmt.Printf("#%d: %s %d (пакет %d)\n", c.ID, c.EntityType, c.EntityID, c.BatchID)
			fmt.Printf("  ЦО:      %s\n", c.HQTimestamp.Format("2006-01-02 15:04:05"))
			fmt.Printf("  Магазин: %s\n", c.StoreTimestamp.Format("2006-01-02 15:04:05"))
		}

		return nil
	},
}

var ResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Разрешить конфликт",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if conflictID <= 0 {
			return fmt.Errorf("укажите конфликт: --id")
		}
		if winner == "" {
			return fmt.Errorf("укажите победителя: --winner hq|store")
		}

		if err := app.ResolveConflict(cmd.Context(), conflictID, winner, notes); err != nil {
			return fmt.Errorf("ошибка разрешения конфликта: %w", err)
		}

		fmt.Printf("✅ Конфликт #%d разрешен в пользу %s\n", conflictID, winner)
		return nil
	},
}

var BulkResolveCmd = &cobra.Command{
	Use:   "bulk-resolve",
	Short: "Массово разрешить конфликты",
	Long: `Разрешает неразрешенное подмножество указанных конфликтов.
Уже разрешенные и отсутствующие идентификаторы пропускаются.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if len(bulkIDs) == 0 {
			return fmt.Errorf("укажите конфликты: --ids")
		}
		if winner == "" {
			return fmt.Errorf("укажите победителя: --winner hq|store")
		}

		resolved, err := app.BulkResolveConflicts(cmd.Context(), bulkIDs, winner, notes)
		if err != nil {
			return fmt.Errorf("ошибка массового разрешения: %w", err)
		}

		fmt.Printf("✅ Разрешено конфликтов: %d из %d\n", resolved, len(bulkIDs))
		if resolved < len(bulkIDs) {
			fmt.Println("   Остальные уже были разрешены или не найдены")
		}

		return nil
	},
}

func init() {
	ResolveCmd.Flags().Int64Var(&conflictID, "id", 0, "идентификатор конфликта")
	BulkResolveCmd.Flags().Int64SliceVar(&bulkIDs, "ids", nil, "идентификаторы конфликтов")

	for _, c := range []*cobra.Command{ResolveCmd, BulkResolveCmd} {
		c.Flags().StringVarP(&winner, "winner", "w", "", "победитель (hq или store)")
		c.Flags().StringVarP(&notes, "notes", "n", "", "комментарий к разрешению")
	}
}
