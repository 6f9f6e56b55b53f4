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
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/learnmode/internal/app"
	"github.com/eslsoft/learnmode/internal/infrastructure/config"
	"github.com/eslsoft/learnmode/internal/infrastructure/server"
	"github.com/eslsoft/learnmode/internal/repository"
)

type lessonStore struct {
	cfg     *config.Config
	log     *logrus.Logger
	repo    repository.LessonRepository
	cleanup func()
}

func openLessonStore() (*lessonStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger, err := server.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	repo, cleanup, err := app.ProvideLessonRepository(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("打开课程存储失败: %w", err)
	}
	return &lessonStore{cfg: cfg, log: logger, repo: repo, cleanup: cleanup}, nil
}

// gzipFor enables gzip for .gz paths even when the flag is off.
func gzipFor(path string, enabled bool) bool {
	if enabled {
		return true
	}
	return path != "-" && strings.HasSuffix(strings.ToLower(path), ".gz")
}

// closers runs in reverse registration order so gzip flushes before its file closes.
type closers []func() error

func (c *closers) add(fn func() error) { *c = append(*c, fn) }

func (c closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		errs = append(errs, c[i]())
	}
	return errors.Join(errs...)
}

// openBackupWriter returns stdout for "-", otherwise a freshly created file.
func openBackupWriter(stdout io.Writer, path string, compress bool) (io.Writer, io.Closer, error) {
	var cs closers
	w := stdout
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("创建输出目录失败: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("创建备份文件失败: %w", err)
		}
		w = f
		cs.add(f.Close)
	}
	if compress {
		gz := gzip.NewWriter(w)
		w = gz
		cs.add(gz.Close)
	}
	return w, cs, nil
}

func openBackupReader(stdin io.Reader, path string, compress bool) (io.Reader, io.Closer, error) {
	var cs closers
	r := stdin
	if path != "-" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("打开备份文件失败: %w", err)
		}
		r = f
		cs.add(f.Close)
	}
	if compress {
		gz, err := gzip.NewReader(r)
		if err != nil {
			_ = cs.Close()
			return nil, nil, fmt.Errorf("创建 gzip 读取器失败: %w", err)
		}
		r = gz
		cs.add(gz.Close)
	}
	return r, cs, nil
}

func describeTarget(path, stdName string) string {
	if path == "-" {
		return stdName
	}
	return path
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

type cliProgress struct {
	out         io.Writer
	label       string
	total       int
	count       int
	lastPrinted int
	step        int
}

func newCLIProgress(out io.Writer, label string) *cliProgress {
	return &cliProgress{out: out, label: label}
}

func (p *cliProgress) Start(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.count = 0
	p.lastPrinted = 0
	p.step = progressStep(total)
	fmt.Fprintf(p.out, "开始%s (共 %d 课)\n", p.label, total)
}

func (p *cliProgress) Increment(delta int) {
	if delta <= 0 {
		return
	}
	p.count += delta
	step := p.step
	if step <= 0 {
		step = 1
	}
	if p.count == p.total || p.lastPrinted == 0 || p.count-p.lastPrinted >= step {
		p.printProgress()
		p.lastPrinted = p.count
	}
}

func (p *cliProgress) Finish() {
	if p.count != p.lastPrinted {
		p.printProgress()
	}
	if p.total > 0 {
		fmt.Fprintf(p.out, "完成%s: %d/%d 课\n", p.label, p.count, p.total)
	} else {
		fmt.Fprintf(p.out, "完成%s: %d 课\n", p.label, p.count)
	}
}

func (p *cliProgress) printProgress() {
	if p.total > 0 {
		fmt.Fprintf(p.out, "%s进度: %d/%d\n", p.label, p.count, p.total)
	} else {
		fmt.Fprintf(p.out, "%s进度: 已处理 %d 课\n", p.label, p.count)
	}
}

func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	return min(max(total/20, 1), 1000)
}
