package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"storesync/internal/app/client"
	"storesync/internal/domain/status"
)

var (
	useCached   bool
	showStats   bool
	storeID     int64
	needingSync bool
)

var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Панель мониторинга сети магазинов",
	Long: `Сводка по сети: магазины online и offline, магазины, которым
пора синхронизироваться, и неразрешенные конфликты.

С флагом --cached показывает последнюю сохраненную сводку без
обращения к серверу.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")

		switch {
		case useCached:
			return showCachedDashboard(app, asJSON)
		case storeID > 0:
			return showStoreStatistics(cmd.Context(), app, storeID, asJSON)
		case showStats:
			return showChainStatistics(cmd.Context(), app, asJSON)
		case needingSync:
			return showNeedingSync(cmd.Context(), app, asJSON)
		default:
			return showDashboard(cmd.Context(), app, asJSON)
		}
	},
}

func printJSON(payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func showDashboard(ctx context.Context, app *client.App, asJSON bool) error {
	dash, err := app.ChainDashboard(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения сводки: %w", err)
	}

	if asJSON {
		return printJSON(dash)
	}

	printDashboard(dash)
	return nil
}

func showCachedDashboard(app *client.App, asJSON bool) error {
	dash, fetchedAt, err := app.CachedDashboard()
	if err != nil {
		return fmt.Errorf("ошибка чтения кэша: %w", err)
	}

	if asJSON {
		return printJSON(struct {
			FetchedAt time.Time              `json:"fetched_at"`
			Dashboard *status.ChainDashboard `json:"dashboard"`
		}{FetchedAt: fetchedAt, Dashboard: dash})
	}

	color.Yellow("Сводка из локального кэша от %s", fetchedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()
	printDashboard(dash)
	return nil
}

func printDashboard(dash *status.ChainDashboard) {
	bold := color.New(color.Bold)

	bold.Println("=== Панель мониторинга сети ===")
	fmt.Printf("Сформирована: %s\n\n", dash.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Printf("Всего магазинов: %d\n", dash.TotalStores)
	color.Green("  Online:  %d", dash.OnlineStores)
	if dash.OfflineStores > 0 {
		color.Red("  Offline: %d", dash.OfflineStores)
	} else {
		fmt.Printf("  Offline: %d\n", dash.OfflineStores)
	}

	if dash.StoresNeedingSync > 0 {
		color.Yellow("Требуют синхронизации: %d", dash.StoresNeedingSync)
	} else {
		fmt.Println("Требуют синхронизации: 0")
	}

	fmt.Printf("Всего пакетов: %d\n", dash.TotalBatches)

	if dash.UnresolvedConflicts > 0 {
		color.Red("Неразрешенных конфликтов: %d", dash.UnresolvedConflicts)
	} else {
		color.Green("Неразрешенных конфликтов: нет")
	}
}

func showChainStatistics(ctx context.Context, app *client.App, asJSON bool) error {
	stats, err := app.ChainStatistics(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения статистики: %w", err)
	}

	if asJSON {
		return printJSON(stats)
	}

	bold := color.New(color.Bold)
	bold.Println("=== Статистика сети ===")
	fmt.Printf("Магазинов: %d, пакетов: %d\n", stats.TotalStores, stats.TotalBatches)
	fmt.Printf("Успешность: %.2f%%\n", stats.SuccessRate)
	fmt.Printf("Записей синхронизировано: %d\n", stats.TotalRecordsSynced)
	fmt.Printf("Неразрешенных конфликтов: %d\n\n", stats.UnresolvedConflicts)

	for _, s := range stats.Stores {
		printStoreStatistics(&s)
		fmt.Println()
	}

	return nil
}

func showStoreStatistics(ctx context.Context, app *client.App, id int64, asJSON bool) error {
	stats, err := app.StoreStatistics(ctx, id)
	if err != nil {
		return fmt.Errorf("ошибка получения статистики магазина: %w", err)
	}

	if asJSON {
		return printJSON(stats)
	}

	printStoreStatistics(stats)
	return nil
}

func printStoreStatistics(s *status.StoreStatistics) {
	name := s.StoreName
	if name == "" {
		name = fmt.Sprintf("магазин %d", s.StoreID)
	}

	if s.IsOnline {
		fmt.Printf("%s [%s]\n", name, color.GreenString("online"))
	} else {
		fmt.Printf("%s [%s]\n", name, color.RedString("offline"))
	}

	if s.LastSuccessfulSync != nil {
		fmt.Printf("  Последняя синхронизация: %s\n", s.LastSuccessfulSync.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("  Последняя синхронизация: никогда")
	}

	fmt.Printf("  Пакетов: %d, успешность: %.2f%%\n", s.TotalBatches, s.SuccessRate)
	for st, count := range s.BatchesByStatus {
		fmt.Printf("    %s: %d\n", st, count)
	}
	fmt.Printf("  Записей: %d, средняя длительность: %.0f мс\n", s.TotalRecordsSynced, s.AvgDurationMs)

	if s.UnresolvedConflicts > 0 {
		color.Red("  Неразрешенных конфликтов: %d", s.UnresolvedConflicts)
	}
}

func showNeedingSync(ctx context.Context, app *client.App, asJSON bool) error {
	ids, err := app.StoresNeedingSync(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения списка: %w", err)
	}

	if asJSON {
		return printJSON(ids)
	}

	if len(ids) == 0 {
		color.Green("✅ Все магазины синхронизированы по расписанию")
		return nil
	}

	color.Yellow("Требуют синхронизации %d магазинов:", len(ids))
	for _, id := range ids {
		fmt.Printf("  магазин %d\n", id)
	}

	return nil
}

func init() {
	DashboardCmd.Flags().BoolVar(&useCached, "cached", false, "показать сводку из локального кэша")
	DashboardCmd.Flags().BoolVar(&showStats, "stats", false, "подробная статистика по сети")
	DashboardCmd.Flags().Int64VarP(&storeID, "store", "s", 0, "статистика одного магазина")
	DashboardCmd.Flags().BoolVar(&needingSync, "needing-sync", false, "магазины, которым пора синхронизироваться")
}
