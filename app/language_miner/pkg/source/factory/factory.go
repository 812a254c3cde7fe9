package factory

import (
	"context"
	"fmt"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/amazon"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/reddit"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/youtube"
)

// Enabled 命令行开启的数据源
type Enabled struct {
	Reddit  bool
	Amazon  bool
	YouTube bool
}

// Any 是否开启了至少一个数据源
func (e Enabled) Any() bool {
	return e.Reddit || e.Amazon || e.YouTube
}

// Sources metadata.sources 中的开关
func (e Enabled) Sources() map[string]bool {
	return map[string]bool{
		source.NameReddit:  e.Reddit,
		source.NameAmazon:  e.Amazon,
		source.NameYouTube: e.YouTube,
	}
}

// NewConnectors 根据配置创建已开启的数据源连接器
//
// 缺少凭证的数据源会被跳过并记录警告，与其它数据源互不影响。
func NewConnectors(ctx context.Context, cfg *config.Config, enabled Enabled) ([]source.Connector, error) {
	if !enabled.Any() {
		return nil, fmt.Errorf("no source enabled")
	}

	var connectors []source.Connector
	if enabled.Reddit {
		c, err := reddit.NewClient(cfg.Sources.Reddit, cfg.Scraping)
		if err != nil {
			logger.Log.Warnf("跳过 Reddit: %v", err)
		} else {
			connectors = append(connectors, c)
		}
	}
	if enabled.Amazon {
		connectors = append(connectors, amazon.NewScraper(cfg.Sources.Amazon, cfg.Scraping))
	}
	if enabled.YouTube {
		c, err := youtube.NewClient(ctx, cfg.Sources.YouTube, cfg.Scraping)
		if err != nil {
			logger.Log.Warnf("跳过 YouTube: %v", err)
		} else {
			connectors = append(connectors, c)
		}
	}
	return connectors, nil
}
