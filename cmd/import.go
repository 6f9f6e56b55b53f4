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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/learnmode/internal/usecase/backup"
)

const (
	importInputKey  = "backup.import.input"
	importGzipKey   = "backup.import.gzip"
	importDryRunKey = "backup.import.dry_run"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "从备份文件导入课程",
	Long:  "从 export 生成的 NDJSON 备份导入课程。已存在的课程按 id 覆盖。file 来源为只读，无法导入。",
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	flags := importCmd.Flags()
	flags.StringP("input", "i", "", "备份文件路径，使用 - 表示标准输入")
	flags.Bool("gzip", false, "输入为 gzip 压缩格式")
	flags.Bool("dry-run", false, "仅校验备份内容，不写入")

	bindFlagToViper(importInputKey, flags.Lookup("input"))
	bindFlagToViper(importGzipKey, flags.Lookup("gzip"))
	bindFlagToViper(importDryRunKey, flags.Lookup("dry-run"))
}

func runImport(cmd *cobra.Command, _ []string) (err error) {
	input := viper.GetString(importInputKey)
	if input == "" {
		return errors.New("请通过 --input 指定备份文件或使用 - 表示标准输入")
	}

	store, err := openLessonStore()
	if err != nil {
		return err
	}
	defer store.cleanup()

	svc, err := backup.NewService(store.repo, backup.WithLogger(store.log))
	if err != nil {
		return fmt.Errorf("创建备份服务失败: %w", err)
	}

	r, closer, err := openBackupReader(cmd.InOrStdin(), input, gzipFor(input, viper.GetBool(importGzipKey)))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("关闭备份输入失败: %w", cerr)
		}
	}()

	dryRun := viper.GetBool(importDryRunKey)
	var opts []backup.ImportOption
	if dryRun {
		opts = append(opts, backup.WithDryRun())
	}
	result, err := svc.Import(cmd.Context(), r, opts...)
	if err != nil {
		return fmt.Errorf("导入备份失败: %w", err)
	}

	if dryRun {
		cmd.Printf("校验完成: %d 课可导入 (未写入)\n", result.Imported)
		return nil
	}
	cmd.Printf("导入完成: %d 课，来自 %s\n", result.Imported, describeTarget(input, "标准输入"))
	return nil
}
