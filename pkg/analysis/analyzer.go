package analysis

// Analyzer is the single entry point over the four analysis components.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	validator Validator
	users     UserExtractor
	requests  RequestAnalyzer
	status    StatusAnalyzer
}

// Option overrides one component of an Analyzer.
type Option func(*options)

type options struct {
	validator Validator
	users     UserExtractor
	requests  RequestAnalyzer
	status    StatusAnalyzer
	texts     StatusTexts
}

// WithValidator replaces the default Validator. Default components built by
// New use it as well.
func WithValidator(v Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithUserExtractor replaces the default UserExtractor.
func WithUserExtractor(e UserExtractor) Option {
	return func(o *options) { o.users = e }
}

// WithRequestAnalyzer replaces the default RequestAnalyzer. The default
// StatusAnalyzer selects the last request through it.
func WithRequestAnalyzer(r RequestAnalyzer) Option {
	return func(o *options) { o.requests = r }
}

// WithStatusAnalyzer replaces the default StatusAnalyzer.
func WithStatusAnalyzer(s StatusAnalyzer) Option {
	return func(o *options) { o.status = s }
}

// WithStatusTexts sets the sentences used by the default StatusAnalyzer.
// Empty fields keep their English default. It has no effect together with
// WithStatusAnalyzer.
func WithStatusTexts(texts StatusTexts) Option {
	return func(o *options) { o.texts = texts }
}

// New creates an Analyzer. Components are wired leaves first: the validator,
// then the user extractor and request analyzer, then the status analyzer.
func New(opts ...Option) *Analyzer {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.validator == nil {
		o.validator = NewValidator()
	}
	if o.users == nil {
		o.users = NewUserExtractor(o.validator)
	}
	if o.requests == nil {
		o.requests = NewRequestAnalyzer(o.validator)
	}
	if o.status == nil {
		o.status = NewStatusAnalyzerWithTexts(o.validator, o.requests, o.texts)
	}

	return &Analyzer{
		validator: o.validator,
		users:     o.users,
		requests:  o.requests,
		status:    o.status,
	}
}

// Analyze returns the requester username.
func (a *Analyzer) Analyze(doc any) (string, bool) {
	return a.users.RequesterUsername(doc)
}

// ChatUsers returns the requester and responder.
func (a *Analyzer) ChatUsers(doc any) ChatUsers {
	return a.users.ChatUsers(doc)
}

// RequestsCount returns the number of request records.
func (a *Analyzer) RequestsCount(doc any) int {
	return a.requests.RequestsCount(doc)
}

// DialogStatus returns the dialog status.
func (a *Analyzer) DialogStatus(doc any) Status {
	return a.status.DialogStatus(doc)
}

// DialogStatusDetails returns the dialog status with supporting facts.
func (a *Analyzer) DialogStatusDetails(doc any) StatusDetails {
	return a.status.DialogStatusDetails(doc)
}

// Validator returns the validator the Analyzer was built with.
func (a *Analyzer) Validator() Validator {
	return a.validator
}

// Analyze returns the requester username using a default Analyzer.
func Analyze(doc any) (string, bool) {
	return New().Analyze(doc)
}

// GetChatUsers returns both participants using a default Analyzer.
func GetChatUsers(doc any) ChatUsers {
	return New().ChatUsers(doc)
}

// GetRequestsCount returns the request count using a default Analyzer.
func GetRequestsCount(doc any) int {
	return New().RequestsCount(doc)
}

// GetDialogStatus returns the dialog status using a default Analyzer.
func GetDialogStatus(doc any) Status {
	return New().DialogStatus(doc)
}

// GetDialogStatusDetails returns the detailed status using a default Analyzer.
func GetDialogStatusDetails(doc any) StatusDetails {
	return New().DialogStatusDetails(doc)
}
