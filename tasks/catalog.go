package tasks

import (
	"slices"
	"strings"
	"time"
)

const (
	imageWait  = 5 * time.Second
	widgetWait = 20 * time.Second
)

var (
	websiteURL      = Field{Name: "websiteURL", Type: String, Required: true, Rule: "url"}
	websiteKey      = Field{Name: "websiteKey", Type: String, Required: true}
	userAgent       = Field{Name: "userAgent", Type: String}
	apiDomain       = Field{Name: "apiDomain", Type: String}
	isInvisible     = Field{Name: "isInvisible", Type: Bool}
	cookies         = Field{Name: "cookies", Type: String}
	body            = Field{Name: "body", Type: String, Required: true, Rule: "captcha_image"}
	comment         = Field{Name: "comment", Type: String}
	imgInstructions = Field{Name: "imgInstructions", Type: String, Rule: "captcha_image"}
)

// Shared catalogue entries, read only. Use Clone for a copy that can be changed.
var (
	KindImageToText = &Kind{
		Name:        "image",
		Type:        "ImageToTextTask",
		InitialWait: imageWait,
		Fields: []Field{
			body,
			{Name: "phrase", Type: Bool},
			{Name: "case", Type: Bool},
			// 0 no preference, 1 numbers, 2 letters, 3 either, 4 both
			{Name: "numeric", Type: Int, Rule: "oneof=0 1 2 3 4"},
			{Name: "math", Type: Bool},
			{Name: "minLength", Type: Int, Rule: "gte=0,lte=20"},
			{Name: "maxLength", Type: Int, Rule: "gte=0,lte=20"},
			comment,
			imgInstructions,
		},
	}

	KindText = &Kind{
		Name:        "text",
		Type:        "TextCaptchaTask",
		InitialWait: imageWait,
		Fields: []Field{
			{Name: "comment", Type: String, Required: true, Rule: "max=140"},
		},
	}

	KindAudio = &Kind{
		Name:        "audio",
		Type:        "AudioTask",
		InitialWait: imageWait,
		Fields: []Field{
			{Name: "body", Type: String, Required: true, Rule: "captcha_audio"},
			{Name: "lang", Type: String, Required: true, Rule: "oneof=en fr de el pt ru"},
		},
	}

	KindCoordinates = &Kind{
		Name:        "coordinates",
		Type:        "CoordinatesTask",
		InitialWait: imageWait,
		Fields:      []Field{body, comment, imgInstructions},
	}

	KindGrid = &Kind{
		Name:        "grid",
		Type:        "GridTask",
		InitialWait: imageWait,
		Fields: []Field{
			body,
			{Name: "rows", Type: Int, Rule: "gte=1"},
			{Name: "columns", Type: Int, Rule: "gte=1"},
			comment,
			imgInstructions,
		},
	}

	KindRotate = &Kind{
		Name:        "rotate",
		Type:        "RotateTask",
		InitialWait: imageWait,
		Fields: []Field{
			body,
			{Name: "angle", Type: Int, Rule: "gte=1,lte=360"},
			comment,
			imgInstructions,
		},
	}

	KindDrawAround = &Kind{
		Name:        "draw-around",
		Type:        "DrawAroundTask",
		InitialWait: imageWait,
		Fields:      []Field{body, comment, imgInstructions},
	}

	KindBoundingBox = &Kind{
		Name:        "bounding-box",
		Type:        "BoundingBoxTask",
		InitialWait: imageWait,
		Fields:      []Field{body, comment, imgInstructions},
	}

	KindRecaptchaV2 = &Kind{
		Name:        "recaptcha-v2",
		Type:        "RecaptchaV2TaskProxyless",
		ProxyType:   "RecaptchaV2Task",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			websiteKey,
			{Name: "recaptchaDataSValue", Type: String},
			isInvisible,
			userAgent,
			cookies,
			apiDomain,
		},
	}

	KindRecaptchaV2Enterprise = &Kind{
		Name:        "recaptcha-v2-enterprise",
		Type:        "RecaptchaV2EnterpriseTaskProxyless",
		ProxyType:   "RecaptchaV2EnterpriseTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			websiteKey,
			{Name: "enterprisePayload", Type: Object},
			isInvisible,
			userAgent,
			cookies,
			apiDomain,
		},
	}

	KindRecaptchaV3 = &Kind{
		Name:        "recaptcha-v3",
		Type:        "RecaptchaV3TaskProxyless",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			websiteKey,
			{Name: "minScore", Type: Float, Required: true, Rule: "gte=0.1,lte=0.9"},
			{Name: "pageAction", Type: String},
			{Name: "isEnterprise", Type: Bool},
			apiDomain,
		},
	}

	KindHCaptcha = &Kind{
		Name:        "hcaptcha",
		Type:        "HCaptchaTaskProxyless",
		ProxyType:   "HCaptchaTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			websiteKey,
			isInvisible,
			{Name: "enterprisePayload", Type: Object},
		},
	}

	KindTurnstile = &Kind{
		Name:        "turnstile",
		Type:        "TurnstileTaskProxyless",
		ProxyType:   "TurnstileTask",
		InitialWait: widgetWait,
		Fields:      []Field{websiteURL, websiteKey, userAgent},
	}

	// Turnstile rendered on a Cloudflare challenge page
	KindTurnstileChallenge = &Kind{
		Name:        "turnstile-challenge",
		Type:        "TurnstileTaskProxyless",
		ProxyType:   "TurnstileTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			websiteKey,
			{Name: "userAgent", Type: String, Required: true},
			{Name: "action", Type: String, Required: true},
			{Name: "data", Type: String, Required: true},
			{Name: "pagedata", Type: String, Required: true},
		},
	}

	KindGeeTestV3 = &Kind{
		Name:        "geetest-v3",
		Type:        "GeeTestTaskProxyless",
		ProxyType:   "GeeTestTask",
		InitialWait: widgetWait,
		Constants:   map[string]any{"version": 3},
		Fields: []Field{
			websiteURL,
			{Name: "gt", Type: String, Required: true},
			{Name: "challenge", Type: String, Required: true},
			{Name: "geetestApiServerSubdomain", Type: String},
			userAgent,
		},
	}

	KindGeeTestV4 = &Kind{
		Name:        "geetest-v4",
		Type:        "GeeTestTaskProxyless",
		ProxyType:   "GeeTestTask",
		InitialWait: widgetWait,
		Constants:   map[string]any{"version": 4},
		Fields: []Field{
			websiteURL,
			// {"captcha_id": "..."} plus any extra init data
			{Name: "initParameters", Type: Object, Required: true},
			{Name: "geetestApiServerSubdomain", Type: String},
			userAgent,
		},
	}

	// Arkose Labs
	KindFunCaptcha = &Kind{
		Name:        "funcaptcha",
		Type:        "FunCaptchaTaskProxyless",
		ProxyType:   "FunCaptchaTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			{Name: "websitePublicKey", Type: String, Required: true},
			{Name: "funcaptchaApiJSSubdomain", Type: String},
			{Name: "data", Type: String},
			userAgent,
		},
	}

	KindCapy = &Kind{
		Name:        "capy",
		Type:        "CapyTaskProxyless",
		ProxyType:   "CapyTask",
		InitialWait: widgetWait,
		Fields:      []Field{websiteURL, websiteKey, userAgent},
	}

	KindKeyCaptcha = &Kind{
		Name:        "keycaptcha",
		Type:        "KeyCaptchaTaskProxyless",
		ProxyType:   "KeyCaptchaTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			{Name: "s_s_c_user_id", Type: Int, Required: true},
			{Name: "s_s_c_session_id", Type: String, Required: true},
			{Name: "s_s_c_web_server_sign", Type: String, Required: true},
			{Name: "s_s_c_web_server_sign2", Type: String, Required: true},
		},
	}

	KindLemin = &Kind{
		Name:        "lemin",
		Type:        "LeminTaskProxyless",
		ProxyType:   "LeminTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			{Name: "captchaId", Type: String, Required: true},
			{Name: "divId", Type: String, Required: true},
			{Name: "leminApiServerSubdomain", Type: String},
			userAgent,
		},
	}

	// Amazon WAF
	KindAmazon = &Kind{
		Name:        "amazon",
		Type:        "AmazonTaskProxyless",
		ProxyType:   "AmazonTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			websiteKey,
			{Name: "iv", Type: String, Required: true},
			{Name: "context", Type: String, Required: true},
			{Name: "challengeScript", Type: String, Rule: "url"},
			{Name: "captchaScript", Type: String, Rule: "url"},
		},
	}

	KindMTCaptcha = &Kind{
		Name:        "mtcaptcha",
		Type:        "MtCaptchaTaskProxyless",
		ProxyType:   "MtCaptchaTask",
		InitialWait: widgetWait,
		Fields:      []Field{websiteURL, websiteKey},
	}

	KindCutCaptcha = &Kind{
		Name:        "cutcaptcha",
		Type:        "CutCaptchaTaskProxyless",
		ProxyType:   "CutCaptchaTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			{Name: "miseryKey", Type: String, Required: true},
			{Name: "apiKey", Type: String, Required: true},
		},
	}

	KindFriendlyCaptcha = &Kind{
		Name:        "friendly",
		Type:        "FriendlyCaptchaTaskProxyless",
		ProxyType:   "FriendlyCaptchaTask",
		InitialWait: widgetWait,
		Fields:      []Field{websiteURL, websiteKey},
	}

	KindCyberSiARA = &Kind{
		Name:        "cybersiara",
		Type:        "AntiCyberSiAraTaskProxyless",
		ProxyType:   "AntiCyberSiAraTask",
		InitialWait: widgetWait,
		Fields: []Field{
			websiteURL,
			{Name: "SlideMasterUrlId", Type: String, Required: true},
			{Name: "userAgent", Type: String, Required: true},
		},
	}

	KindDataDome = &Kind{
		Name:          "datadome",
		Type:          "DataDomeSliderTask",
		ProxyType:     "DataDomeSliderTask",
		ProxyRequired: true,
		InitialWait:   widgetWait,
		Fields: []Field{
			websiteURL,
			{Name: "captchaUrl", Type: String, Required: true, Rule: "url"},
			{Name: "userAgent", Type: String, Required: true},
		},
	}
)

var catalog = []*Kind{
	KindImageToText,
	KindText,
	KindAudio,
	KindCoordinates,
	KindGrid,
	KindRotate,
	KindDrawAround,
	KindBoundingBox,
	KindRecaptchaV2,
	KindRecaptchaV2Enterprise,
	KindRecaptchaV3,
	KindHCaptcha,
	KindTurnstile,
	KindTurnstileChallenge,
	KindGeeTestV3,
	KindGeeTestV4,
	KindFunCaptcha,
	KindCapy,
	KindKeyCaptcha,
	KindLemin,
	KindAmazon,
	KindMTCaptcha,
	KindCutCaptcha,
	KindFriendlyCaptcha,
	KindCyberSiARA,
	KindDataDome,
}

// Every known kind, in a stable order. The entries are shared and must not be modified.
func Kinds() []*Kind {
	return slices.Clone(catalog)
}

// Find a kind by its short name, case insensitive
func Lookup(name string) (*Kind, bool) {
	for _, k := range catalog {
		if strings.EqualFold(k.Name, name) {
			return k, true
		}
	}
	return nil, false
}

func NewImageToText() *Builder[TextSolution] {
	return NewBuilder[TextSolution](KindImageToText)
}

func NewText() *Builder[TextSolution] {
	return NewBuilder[TextSolution](KindText)
}

func NewAudio() *Builder[TextSolution] {
	return NewBuilder[TextSolution](KindAudio)
}

func NewCoordinates() *Builder[CoordinatesSolution] {
	return NewBuilder[CoordinatesSolution](KindCoordinates)
}

func NewGrid() *Builder[GridSolution] {
	return NewBuilder[GridSolution](KindGrid)
}

func NewRotate() *Builder[RotateSolution] {
	return NewBuilder[RotateSolution](KindRotate)
}

func NewDrawAround() *Builder[DrawAroundSolution] {
	return NewBuilder[DrawAroundSolution](KindDrawAround)
}

func NewBoundingBox() *Builder[BoundingBoxSolution] {
	return NewBuilder[BoundingBoxSolution](KindBoundingBox)
}

func NewRecaptchaV2() *Builder[RecaptchaSolution] {
	return NewBuilder[RecaptchaSolution](KindRecaptchaV2)
}

func NewRecaptchaV2Enterprise() *Builder[RecaptchaSolution] {
	return NewBuilder[RecaptchaSolution](KindRecaptchaV2Enterprise)
}

func NewRecaptchaV3() *Builder[RecaptchaSolution] {
	return NewBuilder[RecaptchaSolution](KindRecaptchaV3)
}

func NewHCaptcha() *Builder[HCaptchaSolution] {
	return NewBuilder[HCaptchaSolution](KindHCaptcha)
}

func NewTurnstile() *Builder[TurnstileSolution] {
	return NewBuilder[TurnstileSolution](KindTurnstile)
}

func NewTurnstileChallenge() *Builder[TurnstileSolution] {
	return NewBuilder[TurnstileSolution](KindTurnstileChallenge)
}

func NewGeeTestV3() *Builder[GeeTestV3Solution] {
	return NewBuilder[GeeTestV3Solution](KindGeeTestV3)
}

func NewGeeTestV4() *Builder[GeeTestV4Solution] {
	return NewBuilder[GeeTestV4Solution](KindGeeTestV4)
}

func NewFunCaptcha() *Builder[TokenSolution] {
	return NewBuilder[TokenSolution](KindFunCaptcha)
}

func NewCapy() *Builder[CapySolution] {
	return NewBuilder[CapySolution](KindCapy)
}

func NewKeyCaptcha() *Builder[TokenSolution] {
	return NewBuilder[TokenSolution](KindKeyCaptcha)
}

func NewLemin() *Builder[LeminSolution] {
	return NewBuilder[LeminSolution](KindLemin)
}

func NewAmazon() *Builder[AmazonSolution] {
	return NewBuilder[AmazonSolution](KindAmazon)
}

func NewMTCaptcha() *Builder[TokenSolution] {
	return NewBuilder[TokenSolution](KindMTCaptcha)
}

func NewCutCaptcha() *Builder[TokenSolution] {
	return NewBuilder[TokenSolution](KindCutCaptcha)
}

func NewFriendlyCaptcha() *Builder[TokenSolution] {
	return NewBuilder[TokenSolution](KindFriendlyCaptcha)
}

func NewCyberSiARA() *Builder[TokenSolution] {
	return NewBuilder[TokenSolution](KindCyberSiARA)
}

func NewDataDome() *Builder[DataDomeSolution] {
	return NewBuilder[DataDomeSolution](KindDataDome)
}
