package nlp

// 静态词表：政党、职位、地区、议题、知名人物
// 匹配是确定性的子串查找，不依赖外部模型
// key 为规范名，value 为匹配置信度

var partyTerms = map[string]float64{
	"bjp":       0.95,
	"congress":  0.9,
	"inc":       0.85,
	"aap":       0.9,
	"tmc":       0.9,
	"dmk":       0.9,
	"aiadmk":    0.9,
	"cpi":       0.85,
	"cpm":       0.85,
	"ncp":       0.85,
	"jdu":       0.85,
	"rjd":       0.85,
	"shiv sena": 0.9,
	"bsp":       0.85,
	"sp":        0.6, // 太短，容易误判，置信度调低
}

// 政党别名 -> 规范名
var partyAliases = map[string]string{
	"bharatiya janata party":     "bjp",
	"indian national congress":   "congress",
	"aam aadmi party":            "aap",
	"trinamool":                  "tmc",
	"samajwadi party":            "sp",
	"bahujan samaj party":        "bsp",
	"nationalist congress party": "ncp",
}

var positionTerms = map[string]float64{
	"prime minister":   0.95,
	"chief minister":   0.95,
	"minister":         0.8,
	"mp":               0.75,
	"mla":              0.75,
	"member of parliament": 0.9,
	"cabinet minister": 0.9,
	"governor":         0.85,
	"president":        0.8,
	"mayor":            0.85,
	"sarpanch":         0.85,
	"leader of opposition": 0.9,
	"spokesperson":     0.8,
}

var locationTerms = map[string]float64{
	"delhi":          0.85,
	"mumbai":         0.85,
	"maharashtra":    0.9,
	"uttar pradesh":  0.9,
	"bihar":          0.9,
	"west bengal":    0.9,
	"kolkata":        0.85,
	"tamil nadu":     0.9,
	"chennai":        0.85,
	"karnataka":      0.9,
	"bengaluru":      0.85,
	"kerala":         0.9,
	"gujarat":        0.9,
	"rajasthan":      0.9,
	"punjab":         0.9,
	"haryana":        0.9,
	"telangana":      0.9,
	"hyderabad":      0.85,
	"andhra pradesh": 0.9,
	"odisha":         0.9,
	"assam":          0.9,
	"jharkhand":      0.9,
	"chhattisgarh":   0.9,
	"madhya pradesh": 0.9,
	"goa":            0.85,
	"varanasi":       0.85,
	"lucknow":        0.85,
	"patna":          0.85,
	"amethi":         0.85,
	"wayanad":        0.85,
}

var topicTerms = map[string]float64{
	"education":      0.8,
	"healthcare":     0.8,
	"health":         0.7,
	"economy":        0.8,
	"agriculture":    0.8,
	"farmers":        0.75,
	"employment":     0.8,
	"jobs":           0.7,
	"corruption":     0.8,
	"environment":    0.8,
	"women":          0.7,
	"reservation":    0.8,
	"infrastructure": 0.8,
	"defence":        0.8,
	"foreign policy": 0.85,
	"taxation":       0.8,
	"gst":            0.8,
}

var personTerms = map[string]float64{
	"modi":             0.9,
	"narendra modi":    0.95,
	"rahul gandhi":     0.95,
	"gandhi":           0.7,
	"kejriwal":         0.9,
	"arvind kejriwal":  0.95,
	"mamata banerjee":  0.95,
	"mamata":           0.8,
	"amit shah":        0.95,
	"yogi adityanath":  0.95,
	"nitish kumar":     0.9,
	"stalin":           0.85,
	"sharad pawar":     0.9,
	"akhilesh yadav":   0.9,
	"mayawati":         0.9,
	"tejashwi yadav":   0.9,
	"shashi tharoor":   0.9,
	"smriti irani":     0.9,
	"nirmala sitharaman": 0.9,
}

// 比较意图触发词
var comparisonMarkers = []string{" vs ", " versus ", "compare ", "comparison ", " or "}

// 过滤意图触发词：当查询像 "X from Y" / "X in Y" 这样的限定句式时
var filterMarkers = []string{" from ", " in ", " of ", "all ", "list "}
