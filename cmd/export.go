/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/learnmode/internal/usecase/backup"
)

const (
	exportOutputKey = "backup.export.output"
	exportGzipKey   = "backup.export.gzip"
	exportFilterKey = "backup.export.filter"
	exportBatchKey  = "backup.export.batch_size"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出课程为 NDJSON 备份",
	Long:  "按 id 顺序分页导出课程。首行为 meta 记录，其后每行一课。可用 --filter 只导出部分课程。",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringP("output", "o", "", "备份输出文件路径，使用 - 表示标准输出")
	flags.Bool("gzip", false, "使用 gzip 压缩输出")
	flags.String("filter", "", "CEL 过滤表达式，例如 level == 'beginner'")
	flags.Int("batch-size", 0, "导出批处理大小 (默认 100)")

	bindFlagToViper(exportOutputKey, flags.Lookup("output"))
	bindFlagToViper(exportGzipKey, flags.Lookup("gzip"))
	bindFlagToViper(exportFilterKey, flags.Lookup("filter"))
	bindFlagToViper(exportBatchKey, flags.Lookup("batch-size"))
}

func runExport(cmd *cobra.Command, _ []string) (err error) {
	output := viper.GetString(exportOutputKey)
	if output == "" {
		output = defaultExportFilename(viper.GetBool(exportGzipKey), time.Now())
	}

	store, err := openLessonStore()
	if err != nil {
		return err
	}
	defer store.cleanup()

	svc, err := backup.NewService(store.repo,
		backup.WithBatchSize(viper.GetInt(exportBatchKey)),
		backup.WithLogger(store.log),
	)
	if err != nil {
		return fmt.Errorf("创建备份服务失败: %w", err)
	}

	w, closer, err := openBackupWriter(cmd.OutOrStdout(), output, gzipFor(output, viper.GetBool(exportGzipKey)))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("关闭备份输出失败: %w", cerr)
		}
	}()

	opts := []backup.ExportOption{backup.WithProgressReporter(newCLIProgress(cmd.ErrOrStderr(), "导出"))}
	if filter := viper.GetString(exportFilterKey); filter != "" {
		opts = append(opts, backup.WithFilter(filter))
	}
	if err := svc.Export(cmd.Context(), w, opts...); err != nil {
		return fmt.Errorf("导出备份失败: %w", err)
	}

	cmd.PrintErrf("导出完成: %s\n", describeTarget(output, "标准输出"))
	return nil
}

func defaultExportFilename(compress bool, now time.Time) string {
	name := "learnmode-backup-" + now.UTC().Format("20060102-150405") + ".jsonl"
	if compress {
		name += ".gz"
	}
	return name
}
