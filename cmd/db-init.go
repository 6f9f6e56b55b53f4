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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eslsoft/learnmode/internal/adapter/repository"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
	"github.com/eslsoft/learnmode/internal/infrastructure/database"
	"github.com/eslsoft/learnmode/internal/infrastructure/server"
	"github.com/eslsoft/learnmode/internal/usecase"
)

// dbInitCmd migrates the lesson schema and optionally seeds lessons from files.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "初始化数据库并导入课程文件",
	Long:  "执行数据库迁移，并可通过 --seed-dir 从 YAML/JSON 课程目录导入课程。注意: go-sqlite3 需要 CGO_ENABLED=1 构建。",
	RunE: func(cmd *cobra.Command, args []string) error {
		seedDir, _ := cmd.Flags().GetString("seed-dir")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		logger, err := server.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("初始化日志失败: %w", err)
		}

		drv, cleanup, err := database.NewDriver(cfg, logger)
		if err != nil {
			return fmt.Errorf("连接数据库失败: %w", err)
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := database.Migrate(ctx, drv); err != nil {
			return fmt.Errorf("执行数据库迁移失败: %w", err)
		}
		logger.Info("数据库迁移完成")

		if seedDir == "" {
			return nil
		}
		lessons := usecase.NewLessonUsecase(repository.NewSQLLessonRepository(drv))
		n, err := seedLessons(ctx, lessons, seedDir, logger)
		if err != nil {
			return err
		}
		cmd.Printf("已导入 %d 节课程\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("seed-dir", "", "课程文件目录，迁移后导入其中的 YAML/JSON 课程")
}

// seedLessons saves every lesson file in dir, in file name order.
func seedLessons(ctx context.Context, lessons usecase.LessonUsecase, dir string, log logrus.FieldLogger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("读取课程目录失败: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && repository.IsLessonFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for i, name := range names {
		lesson, err := repository.LoadLessonFile(filepath.Join(dir, name))
		if err != nil {
			return i, err
		}
		if _, err := lessons.Save(ctx, lesson); err != nil {
			return i, fmt.Errorf("保存课程 %s 失败: %w", name, err)
		}
		log.WithFields(logrus.Fields{"file": name, "lesson_id": lesson.ID}).Debug("lesson seeded")
	}
	return len(names), nil
}
