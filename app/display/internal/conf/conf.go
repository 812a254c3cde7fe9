package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Auth   *Auth
}

// Auth 为空时不校验 token
type Auth struct {
	JwtKey string `json:"jwt_key"`
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Reports *Reports
}

// Reports language_miner 的输出目录
type Reports struct {
	Dir string
}
