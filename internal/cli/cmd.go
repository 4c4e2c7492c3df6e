package cli

import (
	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

func SetupCommands(a *App) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "payroll",
		Short:         "记录员工工作时长并计算月度工资",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	employeesCmd := &cobra.Command{
		Use:   "employees",
		Short: "列出所有员工",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.ListEmployees()
		},
	}

	employeeCmd := &cobra.Command{
		Use:   "employee",
		Short: "管理员工",
	}
	employeeAddCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "添加员工",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.AddEmployee(args[0])
			return err
		},
	}
	employeeCmd.AddCommand(employeeAddCmd)

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "管理工作记录",
	}
	recordAddCmd := &cobra.Command{
		Use:   "add [employee] [YYYY-MM-DD] [HH:mm] [HH:mm]",
		Short: "添加工作记录，结束时间早于开始时间表示跨夜",
		Args:  cobra.ExactArgs(4),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, 0)
			for _, e := range a.repo.GetEmployees() {
				names = append(names, e.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.AddRecord(args[0], args[1], args[2], args[3])
			return err
		},
	}
	recordCmd.AddCommand(recordAddCmd)

	recordsCmd := &cobra.Command{
		Use:   "records [YYYY-MM-DD]",
		Short: "列出工作记录，可指定日期",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var date string
			if len(args) > 0 {
				date = args[0]
			}

			a.ListRecords(date)
		},
	}

	salaryCmd := &cobra.Command{
		Use:   "salary [YYYY-MM]",
		Short: "显示月度工资，默认当月",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ym := worktime.CurrentMonth()
			if len(args) > 0 {
				parsed, err := ParseYearMonth(args[0])
				if err != nil {
					return err
				}
				ym = parsed
			}

			a.ShowSalary(ym)
			return nil
		},
	}

	// add commands
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(salaryCmd)

	return rootCmd
}
