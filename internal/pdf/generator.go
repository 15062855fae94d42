package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"survey-go/internal/config"
	"survey-go/pkg/limiter"
)

// ErrPDFGeneration 浏览器或导出失败
var ErrPDFGeneration = errors.New("PDF generation failed")

// slotKey 渲染槽位的 key
const slotKey = "pdf"

// A4 纸张与 1cm 边距，单位英寸
const (
	paperWidthInch  = 8.27
	paperHeightInch = 11.69
	marginInch      = 0.3937
)

const footerTemplate = `<div style="font-size:10px;width:100%;text-align:center;color:#6b7280;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

// Generator 把 HTML 转成 PDF 文件
type Generator interface {
	Generate(ctx context.Context, html string, destPath string) error
}

// SlotReporter 能报告渲染槽位占用的生成器
type SlotReporter interface {
	RenderSlots(ctx context.Context) (limiter.Usage, error)
}

// RodGenerator 每次调用启动一个无头 Chromium，导出后立即关闭
type RodGenerator struct {
	cfg     config.BrowserConfig
	limiter limiter.Limiter
	logger  *logrus.Logger
}

// NewRodGenerator 创建 PDF 生成器，lim 为 nil 时不限制并发
func NewRodGenerator(cfg config.BrowserConfig, lim limiter.Limiter, logger *logrus.Logger) *RodGenerator {
	if lim == nil {
		lim = limiter.Unlimited{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RodGenerator{cfg: cfg, limiter: lim, logger: logger}
}

// RenderSlots 渲染槽位的占用情况，限制器不支持统计时返回零值
func (g *RodGenerator) RenderSlots(ctx context.Context) (limiter.Usage, error) {
	if r, ok := g.limiter.(limiter.Reporter); ok {
		return r.Usage(ctx, slotKey)
	}
	return limiter.Usage{}, nil
}

// Generate 渲染 HTML 并写入 destPath，失败时不留下文件
func (g *RodGenerator) Generate(ctx context.Context, html string, destPath string) error {
	if timeout := g.cfg.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := g.limiter.Acquire(ctx, slotKey); err != nil {
		return fmt.Errorf("%w: 等待渲染槽位: %v", ErrPDFGeneration, err)
	}
	defer g.limiter.Release(context.Background(), slotKey)

	start := time.Now()
	if err := g.render(ctx, html, destPath); err != nil {
		g.logger.WithError(err).WithField("dest", destPath).Error("PDF生成失败")
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	g.logger.WithFields(logrus.Fields{
		"dest":    destPath,
		"mode":    g.cfg.Mode,
		"latency": time.Since(start).String(),
	}).Info("PDF生成完成")
	return nil
}

func (g *RodGenerator) render(ctx context.Context, html string, destPath string) error {
	l := g.newLauncher().Context(ctx)
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("启动浏览器失败: %w", err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("连接浏览器失败: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("创建页面失败: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("加载HTML失败: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("等待页面加载失败: %w", err)
	}

	stream, err := page.PDF(PrintOptions())
	if err != nil {
		return fmt.Errorf("导出PDF失败: %w", err)
	}

	return writeFile(destPath, stream)
}

// newLauncher 按运行模式配置浏览器
func (g *RodGenerator) newLauncher() *launcher.Launcher {
	l := launcher.New().Headless(true)

	if g.cfg.Mode == config.BrowserModeDeployed {
		l = l.Bin(g.cfg.BinPath).NoSandbox(true)
	} else if g.cfg.NoSandbox {
		l = l.NoSandbox(true)
	}

	return l
}

// PrintOptions A4、1cm 边距、打印背景、页脚页码
func PrintOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      "<div></div>",
		FooterTemplate:      footerTemplate,
		PaperWidth:          float64Ptr(paperWidthInch),
		PaperHeight:         float64Ptr(paperHeightInch),
		MarginTop:           float64Ptr(marginInch),
		MarginBottom:        float64Ptr(marginInch),
		MarginLeft:          float64Ptr(marginInch),
		MarginRight:         float64Ptr(marginInch),
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

// writeFile 写入目标文件，出错时删除半成品
func writeFile(destPath string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(destPath)
		return fmt.Errorf("写入PDF失败: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("写入PDF失败: %w", err)
	}
	return nil
}
