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
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eslsoft/learnmode/internal/adapter/repository"
	"github.com/eslsoft/learnmode/internal/entity"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
	"github.com/eslsoft/learnmode/internal/infrastructure/server"
	lessonrepo "github.com/eslsoft/learnmode/internal/repository"
	"github.com/eslsoft/learnmode/internal/usecase"
	"github.com/eslsoft/learnmode/internal/usecase/modeadapter"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "按学习模式渲染一节课并输出 JSON",
	Long: `从课程文件 (--file) 或已配置的课程存储 (--lesson) 读取一节课，
按 --mode 生成练习条目并以 JSON 输出到标准输出。`,
	Example: `  learnmode render --file lessons/greetings.yaml --mode listening --limit 5
  learnmode render --lesson greetings --mode grammar --level advanced`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		lessonID, _ := cmd.Flags().GetString("lesson")
		if (filePath == "") == (lessonID == "") {
			return fmt.Errorf("请指定 --file 或 --lesson 其中之一")
		}

		opts := renderOptions{}
		opts.mode, _ = cmd.Flags().GetString("mode")
		opts.level, _ = cmd.Flags().GetString("level")
		opts.limit, _ = cmd.Flags().GetInt("limit")
		opts.skip, _ = cmd.Flags().GetStringSlice("skip")
		if opts.limit < 0 {
			return fmt.Errorf("--limit 不能为负数")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		logger, err := server.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("初始化日志失败: %w", err)
		}
		logger.SetOutput(cmd.ErrOrStderr())

		if filePath != "" {
			lesson, err := repository.LoadLessonFile(filePath)
			if err != nil {
				return err
			}
			provider := singleLessonProvider{lesson: lesson}
			return renderLesson(cmd.Context(), cmd.OutOrStdout(), provider, lesson.ID, cfg, logger, opts)
		}

		store, err := openLessonStore()
		if err != nil {
			return err
		}
		defer store.cleanup()
		return renderLesson(cmd.Context(), cmd.OutOrStdout(), store.repo, lessonID, cfg, logger, opts)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("file", "f", "", "课程文件 (YAML 或 JSON)")
	renderCmd.Flags().StringP("lesson", "l", "", "课程 id，从课程存储读取")
	renderCmd.Flags().StringP("mode", "m", string(entity.DefaultMode), "学习模式")
	renderCmd.Flags().String("level", "", "用户水平: beginner, intermediate, advanced")
	renderCmd.Flags().Int("limit", 0, "最多输出条目数，0 表示不限")
	renderCmd.Flags().StringSlice("skip", nil, "跳过的条目 id，逗号分隔或重复指定")
}

type renderOptions struct {
	mode  string
	level string
	limit int
	skip  []string
}

type singleLessonProvider struct {
	lesson *entity.Lesson
}

func (p singleLessonProvider) FetchLessonContent(_ context.Context, id string) (*entity.Lesson, error) {
	if p.lesson == nil || p.lesson.ID != id {
		return nil, entity.ErrLessonNotFound
	}
	return p.lesson, nil
}

func renderLesson(ctx context.Context, w io.Writer, provider lessonrepo.LessonContentProvider, lessonID string, cfg *config.Config, logger logrus.FieldLogger, opts renderOptions) error {
	adapter := modeadapter.New(
		modeadapter.WithConfig(modeadapter.Config{
			KeywordCount:    cfg.Content.KeywordCount,
			DistractorCount: cfg.Content.DistractorCount,
		}),
		modeadapter.WithLogger(logger),
	)
	uc := usecase.NewLearningContentUsecase(provider, adapter, logger)

	result, err := uc.GetModeContent(ctx, lessonID, entity.Mode(opts.mode), usecase.ModeContentOptions{
		UserLevel: entity.ParseLevel(opts.level),
		Limit:     opts.limit,
		SkipIDs:   opts.skip,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
