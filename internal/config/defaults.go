package config

import "github.com/spf13/viper"

const defaultSummaryTemplate = `本周（{start_date}-{end_date}），盈米基金品牌相关信息总量{total}条，其中正面信息{positive}条，负面信息{negative}条，中性信息{neutral}条。
主要分布在网媒（{web}条）、APP（{app}条）、微信（{wechat}条）等平台。`

const defaultNotes = `1. 数据来源：本报告数据来源于公开网络信息监测。
2. 媒体筛选：本报告只收录权威媒体报道，排除转载网站和公告类内容。
3. 去重说明：本报告已对新闻标题进行去重处理，且已排除与盈米新闻重复的内容。
4. 摘要筛选：品牌内容摘要只显示包含盈米基金观点的内容（含"盈米基金"、"盈米"、"且慢"等关键词）。
5. 机构标注：竞品要闻和合作伙伴要闻中标注了相关机构名称。`

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	// Classifier defaults
	viper.SetDefault("classifier.authoritative_media", []string{
		"新华网", "新华社", "人民网", "人民日报", "央视网", "中国新闻网", "中新网", "经济日报", "光明网",
		"中国证券报", "上海证券报", "证券时报", "证券日报", "中国基金报", "21世纪经济报道",
		"第一财经", "每日经济新闻", "经济观察报", "财新", "界面新闻", "澎湃新闻", "新京报",
		"南方都市报", "券商中国", "财联社", "北京商报", "华夏时报", "金融时报",
	})
	viper.SetDefault("classifier.repost_sites", []string{
		"转载网", "百家号", "搜狐号", "网易号", "今日头条", "东方财富网股吧", "雪球", "一点资讯", "趣头条",
	})
	viper.SetDefault("classifier.announcement_keywords", []string{
		"公告", "提示性", "招募说明书", "托管协议", "分红", "净值", "暂停申购", "恢复申购", "基金经理变更",
	})
	viper.SetDefault("classifier.brand_keywords", []string{"盈米基金", "盈米", "且慢"})

	// Sheet groupings
	viper.SetDefault("sheets.brand", "主品牌-盈米基金")
	viper.SetDefault("sheets.competitor", []string{"蚂蚁财富", "天天基金", "好买基金", "雪球基金", "E大"})
	viper.SetDefault("sheets.partner", []string{"合作基金公司", "合作银行"})
	viper.SetDefault("sheets.bank_broker", []string{"银行竞品", "券商竞品"})
	viper.SetDefault("sheets.industry", []string{"监管政策法规", "基金处罚违规"})

	// Layout defaults
	viper.SetDefault("layout.header_rows", 1)
	viper.SetDefault("layout.strip_markup", true)
	viper.SetDefault("layout.columns.sequence", 0)
	viper.SetDefault("layout.columns.topic", 1)
	viper.SetDefault("layout.columns.title", 2)
	viper.SetDefault("layout.columns.time", 3)
	viper.SetDefault("layout.columns.tendency", 4)
	viper.SetDefault("layout.columns.source", 5)
	viper.SetDefault("layout.columns.channel", 6)
	viper.SetDefault("layout.columns.author", 7)
	viper.SetDefault("layout.columns.summary", 23)
	viper.SetDefault("layout.official_columns.sequence", 0)
	viper.SetDefault("layout.official_columns.media", 1)
	viper.SetDefault("layout.official_columns.date", 2)
	viper.SetDefault("layout.official_columns.topic", 3)
	viper.SetDefault("layout.official_columns.title", 4)
	viper.SetDefault("layout.official_columns.reporter", 5)
	viper.SetDefault("layout.official_columns.signature", 6)
	viper.SetDefault("layout.official_columns.link", 7)

	// Report texts
	viper.SetDefault("report.title", "珠海盈米基金销售有限公司舆情监测周报")
	viper.SetDefault("report.period", "监测平台：{start_date}-{end_date}")
	viper.SetDefault("report.summary_heading", "一、监测结果综述")
	viper.SetDefault("report.summary_template", defaultSummaryTemplate)
	viper.SetDefault("report.counts", map[string]int{
		"total": 1774, "positive": 745, "negative": 52, "neutral": 977,
		"web": 1035, "app": 265, "wechat": 310,
	})
	viper.SetDefault("report.brand.heading", "二、盈米基金重点信息")
	viper.SetDefault("report.brand.empty", "本周无盈米基金重点信息。")
	viper.SetDefault("report.competitor.heading", "三、竞品要闻")
	viper.SetDefault("report.competitor.empty", "本周无竞品要闻。")
	viper.SetDefault("report.competitor.label_format", "【{label}】")
	viper.SetDefault("report.competitor.label_fallback", true)
	viper.SetDefault("report.competitor.labels", []map[string]string{
		{"sheet": "E大", "label": "ETF拯救世界（E大）"},
	})
	viper.SetDefault("report.partner.heading", "四、合作伙伴要闻")
	viper.SetDefault("report.partner.empty", "本周无合作伙伴要闻。")
	viper.SetDefault("report.partner.label_format", "【{label}】")
	viper.SetDefault("report.partner.label_fallback", true)
	viper.SetDefault("report.industry.heading", "五、行业要闻")
	viper.SetDefault("report.industry.empty", "本周无行业要闻。")
	viper.SetDefault("report.industry.label_format", "类别：{label}")
	viper.SetDefault("report.industry.label_fallback", false)
	viper.SetDefault("report.industry.labels", []map[string]string{
		{"sheet": "监管政策法规", "label": "监管政策"},
		{"sheet": "基金处罚违规", "label": "行业监管"},
	})
	viper.SetDefault("report.notes_heading", "六、备注")
	viper.SetDefault("report.notes", defaultNotes)
	viper.SetDefault("report.timestamp_prefix", "报告生成时间：")
	viper.SetDefault("report.timestamp_layout", "2006年01月02日 15:04")
	viper.SetDefault("report.unknown_media", "未知")
	viper.SetDefault("report.media_prefix", "媒体平台：")
	viper.SetDefault("report.time_prefix", "发布时间：")
	viper.SetDefault("report.link_prefix", "原文链接：")
	viper.SetDefault("report.positive_tendency", "正面")

	// Output defaults
	viper.SetDefault("output.format", "docx")
}
