package serverconfig

type Config struct {
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type GameConfig struct {
	// MapData 是地图布局文件路径：每行一个区域，空格分隔的 "x,y" 格子坐标。
	MapData string `yaml:"map_data" mapstructure:"map_data"`
	// IdleTimeoutS 是对局无操作自动结束的阈值（秒）。
	IdleTimeoutS int `yaml:"idle_timeout_s" mapstructure:"idle_timeout_s"`
	// MonitorIntervalS 是空闲监控的巡检间隔（秒）。
	MonitorIntervalS int `yaml:"monitor_interval_s" mapstructure:"monitor_interval_s"`
	// EventCapacity 是每局事件广播的缓冲容量。
	EventCapacity int `yaml:"event_capacity" mapstructure:"event_capacity"`
}
