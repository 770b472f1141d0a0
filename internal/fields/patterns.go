package fields

// defaultPatternSpecs returns the built-in field pattern set. Order
// matters: when a label text matches several field identifiers, the
// first entry in this list wins, so more specific identifiers must come
// before generic ones that could swallow them.
func defaultPatternSpecs() []PatternSpec {
	return []PatternSpec{
		// Personal information
		{ID: "name", Exprs: []string{`姓\s*名`, `申请人`, `负责人`, `姓名：`, `名字`}},
		{ID: "gender", Exprs: []string{`性\s*别`, `性别：`}},
		{ID: "birth_date", Exprs: []string{`出生年月`, `出生日期`, `生日`, `出生时间`}},
		{ID: "phone", Exprs: []string{`电\s*话`, `联系电话`, `手机`, `联系方式`, `电话号码`}},
		{ID: "email", Exprs: []string{`邮\s*箱`, `电子邮件`, `E-?mail`, `电邮`}},
		{ID: "ethnicity", Exprs: []string{`民\s*族`, `民族：`}},
		{ID: "nationality", Exprs: []string{`国\s*籍`, `国籍：`}},
		{ID: "id_number", Exprs: []string{`身份证`, `证件号`, `身份证号`}},
		{ID: "address", Exprs: []string{`地\s*址`, `住址`, `通讯地址`, `联系地址`}},

		// Professional information
		{ID: "title", Exprs: []string{`职\s*称`, `职务`, `专业技术职务`, `技术职称`, `职位`}},
		{ID: "department", Exprs: []string{`部\s*门`, `院系`, `单位`, `所在部门`, `工作单位`}},
		{ID: "degree", Exprs: []string{`学\s*位`, `学历`, `最高学位`, `最终学位`}},
		{ID: "major", Exprs: []string{`专\s*业`, `研究方向`, `研究领域`, `专业方向`}},

		// Project and research
		{ID: "project_name", Exprs: []string{`项目名称`, `课题名称`, `研究名称`, `项目题目`}},
		{ID: "project_number", Exprs: []string{`项目编号`, `项目号`, `课题编号`, `编号`}},
		{ID: "funding", Exprs: []string{`经\s*费`, `资助金额`, `项目经费`, `资金`, `金额`}},
		{ID: "period", Exprs: []string{`期\s*限`, `周期`, `起止时间`, `时间段`, `年限`}},
		{ID: "date", Exprs: []string{`日\s*期`, `时间`, `年月日`, `申请日期`}},

		// Publications
		{ID: "paper_title", Exprs: []string{`论文题目`, `论文名称`, `文章标题`, `论文标题`, `题目`}},
		{ID: "journal", Exprs: []string{`期\s*刊`, `杂志`, `发表期刊`, `刊物`, `会议`}},
		{ID: "author", Exprs: []string{`作\s*者`, `著者`, `作者姓名`, `第一作者`}},

		// Awards
		{ID: "award_name", Exprs: []string{`奖项名称`, `获奖名称`, `奖励名称`, `成果名称`}},
		{ID: "award_level", Exprs: []string{`奖励等级`, `获奖等级`, `奖项级别`, `等级`}},
		{ID: "award_date", Exprs: []string{`获奖时间`, `获奖日期`, `颁奖时间`}},

		// Other common fields
		{ID: "description", Exprs: []string{`描\s*述`, `简介`, `说明`, `内容`, `详情`, `成果简介`}},
		{ID: "notes", Exprs: []string{`备\s*注`, `说明`, `其他`, `附注`, `注释`}},
		{ID: "signature", Exprs: []string{`签\s*名`, `签字`, `申请人签名`, `负责人签名`}},
		{ID: "year", Exprs: []string{`年\s*度`, `年份`, `学年`, `年`}},
	}
}
