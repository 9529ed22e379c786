package solveerrors

// Closed set of business errors returned by the remote service
type Code int

const (
	// Fallback for any code this package does not recognize
	Unknown Code = iota
	InvalidAPIKey
	NoSlotAvailable
	ImageTooSmall
	ImageTooBig
	ZeroBalance
	IPNotAllowed
	// Three workers failed the task. The service refunds the cost.
	UnsolvableCaptcha
	BadDuplicates
	NoSuchMethod
	UnsupportedImageType
	CaptchaIDNotFound
	IPBlocked
	TaskNotProvided
	TaskNotSupported
	InvalidSiteKey
	AccountSuspended
	BadProxy
	ProxyConnectionFailed
	BadParameters
	BadImageInstructions
)

var codesByName = map[string]Code{
	"ERROR_KEY_DOES_NOT_EXIST":        InvalidAPIKey,
	"ERROR_NO_SLOT_AVAILABLE":         NoSlotAvailable,
	"ERROR_ZERO_CAPTCHA_FILESIZE":     ImageTooSmall,
	"ERROR_TOO_BIG_CAPTCHA_FILESIZE":  ImageTooBig,
	"ERROR_ZERO_BALANCE":              ZeroBalance,
	"ERROR_IP_NOT_ALLOWED":            IPNotAllowed,
	"ERROR_CAPTCHA_UNSOLVABLE":        UnsolvableCaptcha,
	"ERROR_BAD_DUPLICATES":            BadDuplicates,
	"ERROR_NO_SUCH_METHOD":            NoSuchMethod,
	"ERROR_IMAGE_TYPE_NOT_SUPPORTED":  UnsupportedImageType,
	"ERROR_NO_SUCH_CAPCHA_ID":         CaptchaIDNotFound,
	"ERROR_IP_BLOCKED":                IPBlocked,
	"ERROR_TASK_ABSENT":               TaskNotProvided,
	"ERROR_TASK_NOT_SUPPORTED":        TaskNotSupported,
	"ERROR_RECAPTCHA_INVALID_SITEKEY": InvalidSiteKey,
	"ERROR_ACCOUNT_SUSPENDED":         AccountSuspended,
	"ERROR_BAD_PROXY":                 BadProxy,
	"ERROR_PROXY_CONNECTION_FAILED":   ProxyConnectionFailed,
	"ERR_PROXY_CONNECTION_FAILED":     ProxyConnectionFailed,
	"ERROR_BAD_PARAMETERS":            BadParameters,
	"ERROR_BAD_IMGINSTRUCTIONS":       BadImageInstructions,
}

var codeNames = [...]string{
	Unknown:               "Unknown",
	InvalidAPIKey:         "InvalidAPIKey",
	NoSlotAvailable:       "NoSlotAvailable",
	ImageTooSmall:         "ImageTooSmall",
	ImageTooBig:           "ImageTooBig",
	ZeroBalance:           "ZeroBalance",
	IPNotAllowed:          "IPNotAllowed",
	UnsolvableCaptcha:     "UnsolvableCaptcha",
	BadDuplicates:         "BadDuplicates",
	NoSuchMethod:          "NoSuchMethod",
	UnsupportedImageType:  "UnsupportedImageType",
	CaptchaIDNotFound:     "CaptchaIDNotFound",
	IPBlocked:             "IPBlocked",
	TaskNotProvided:       "TaskNotProvided",
	TaskNotSupported:      "TaskNotSupported",
	InvalidSiteKey:        "InvalidSiteKey",
	AccountSuspended:      "AccountSuspended",
	BadProxy:              "BadProxy",
	ProxyConnectionFailed: "ProxyConnectionFailed",
	BadParameters:         "BadParameters",
	BadImageInstructions:  "BadImageInstructions",
}

var codeMessages = [...]string{
	Unknown:               "the service returned an unrecognized error code",
	InvalidAPIKey:         "the api key is incorrect",
	NoSlotAvailable:       "the bid is too low or the queue of captchas is too long, no slot available",
	ImageTooSmall:         "image size is smaller than 100 bytes",
	ImageTooBig:           "image is larger than 100kB or bigger than 600px on any side",
	ZeroBalance:           "no funds on the account",
	IPNotAllowed:          "the request was sent from an ip that is not in the list of trusted ips",
	UnsolvableCaptcha:     "workers were unable to solve the captcha, the price was returned to the balance",
	BadDuplicates:         "max number of attempts reached without the minimum number of matches",
	NoSuchMethod:          "request made to an api route that does not exist",
	UnsupportedImageType:  "the image has an incorrect format or size, or is corrupted",
	CaptchaIDNotFound:     "the captcha id in the request is incorrect",
	IPBlocked:             "the ip address is banned due to improper use of the api",
	TaskNotProvided:       "the task property is missing from createTask",
	TaskNotSupported:      "the task type is not supported by the api",
	InvalidSiteKey:        "the sitekey value is not valid",
	AccountSuspended:      "api access was blocked for improper use of the api",
	BadProxy:              "unable to establish connection through the proxy",
	ProxyConnectionFailed: "could not connect to proxy",
	BadParameters:         "the required captcha parameters are missing or incorrect",
	BadImageInstructions:  "imgInstructions contains an unsupported, corrupted or oversized image",
}

// Map a remote string code onto the closed set. Never fails: unrecognized codes map to Unknown.
func Lookup(raw string) Code {
	code, ok := codesByName[raw]
	if !ok {
		return Unknown
	}
	return code
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return codeNames[Unknown]
	}
	return codeNames[c]
}

func (c Code) message() string {
	if c < 0 || int(c) >= len(codeMessages) {
		return codeMessages[Unknown]
	}
	return codeMessages[c]
}

// Whether the service returns the job cost to the balance for this failure
func (c Code) Refunded() bool {
	return c == UnsolvableCaptcha
}
