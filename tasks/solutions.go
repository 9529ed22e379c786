package tasks

// Solution shapes returned in the "solution" field of a ready task

type TokenSolution struct {
	Token string `json:"token"`
}

type TextSolution struct {
	Text string `json:"text"`
}

type RecaptchaSolution struct {
	GRecaptchaResponse string `json:"gRecaptchaResponse"`
	Token              string `json:"token"`
}

type HCaptchaSolution struct {
	Token              string `json:"token"`
	RespKey            string `json:"respKey"`
	UserAgent          string `json:"userAgent"`
	GRecaptchaResponse string `json:"gRecaptchaResponse"`
}

type TurnstileSolution struct {
	Token     string `json:"token"`
	UserAgent string `json:"userAgent"`
}

type GeeTestV3Solution struct {
	Challenge string `json:"challenge"`
	Validate  string `json:"validate"`
	Seccode   string `json:"seccode"`
}

type GeeTestV4Solution struct {
	CaptchaID     string `json:"captcha_id"`
	LotNumber     string `json:"lot_number"`
	PassToken     string `json:"pass_token"`
	GenTime       string `json:"gen_time"`
	CaptchaOutput string `json:"captcha_output"`
}

type CapySolution struct {
	CaptchaKey   string `json:"captchakey"`
	ChallengeKey string `json:"challengekey"`
	Answer       string `json:"answer"`
	RespKey      string `json:"respKey"`
}

type LeminSolution struct {
	Answer      string `json:"answer"`
	ChallengeID string `json:"challenge_id"`
}

type AmazonSolution struct {
	CaptchaVoucher string `json:"captcha_voucher"`
	ExistingToken  string `json:"existing_token"`
}

type DataDomeSolution struct {
	Cookie string `json:"cookie"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type CoordinatesSolution struct {
	Coordinates []Point `json:"coordinates"`
}

type GridSolution struct {
	// 1-based indexes of the tiles to click
	Click []int `json:"click"`
}

type RotateSolution struct {
	Rotate int `json:"rotate"`
}

type DrawAroundSolution struct {
	Canvas [][]Point `json:"canvas"`
}

type BoundingBox struct {
	XMin int `json:"xMin"`
	YMin int `json:"yMin"`
	XMax int `json:"xMax"`
	YMax int `json:"yMax"`
}

type BoundingBoxSolution struct {
	BoundingBoxes [][]BoundingBox `json:"bounding_boxes"`
}
