package technique

// defaultTactics is the embedded set of ATT&CK enterprise tactics.
var defaultTactics = []Tactic{
	{ID: "TA0001", Name: "Initial Access", Description: "The adversary is trying to get into your network."},
	{ID: "TA0002", Name: "Execution", Description: "The adversary is trying to run malicious code."},
	{ID: "TA0003", Name: "Persistence", Description: "The adversary is trying to maintain their foothold."},
	{ID: "TA0004", Name: "Privilege Escalation", Description: "The adversary is trying to gain higher-level permissions."},
	{ID: "TA0005", Name: "Defense Evasion", Description: "The adversary is trying to avoid being detected."},
	{ID: "TA0006", Name: "Credential Access", Description: "The adversary is trying to steal account names and passwords."},
	{ID: "TA0007", Name: "Discovery", Description: "The adversary is trying to figure out your environment."},
	{ID: "TA0008", Name: "Lateral Movement", Description: "The adversary is trying to move through your environment."},
	{ID: "TA0009", Name: "Collection", Description: "The adversary is trying to gather data of interest."},
	{ID: "TA0010", Name: "Exfiltration", Description: "The adversary is trying to steal data."},
	{ID: "TA0011", Name: "Command and Control", Description: "The adversary is trying to communicate with compromised systems."},
	{ID: "TA0040", Name: "Impact", Description: "The adversary is trying to manipulate, interrupt, or destroy your systems and data."},
}

// defaultTechniques is the embedded technique data set. Keywords are single
// lowercase tokens; multi-word phrases from the upstream framework are split
// into their distinctive tokens.
var defaultTechniques = []Technique{
	// Initial Access
	{
		ID: "T1190", Name: "Exploit Public-Facing Application", TacticID: "TA0001",
		Description: "Adversaries may attempt to exploit a weakness in an Internet-facing host or system.",
		Detection:   "Monitor application logs for exploitation attempts. WAF logs can reveal exploitation patterns.",
		Keywords:    []string{"exploit", "vulnerability", "cve", "public-facing", "webapp", "rce"},
	},
	{
		ID: "T1133", Name: "External Remote Services", TacticID: "TA0001",
		Description: "Remote services such as VPNs and Citrix allow users to connect to internal enterprise network resources.",
		Detection:   "Monitor for unusual VPN connections, especially from unexpected geographic locations.",
		Keywords:    []string{"vpn", "citrix", "remote", "gateway"},
	},
	{
		ID: "T1566", Name: "Phishing", TacticID: "TA0001",
		Description: "Adversaries may send phishing messages to gain access to victim systems.",
		Detection:   "Monitor email for suspicious attachments and links. Track email security alerts.",
		Keywords:    []string{"phishing", "email", "attachment", "link", "spearphishing"},
	},
	{
		ID: "T1078", Name: "Valid Accounts", TacticID: "TA0001",
		Description: "Adversaries may obtain and abuse credentials of existing accounts.",
		Detection:   "Monitor for suspicious login patterns and credential usage.",
		Keywords:    []string{"credentials", "stolen", "compromised", "account", "valid"},
	},

	// Execution
	{
		ID: "T1059", Name: "Command and Scripting Interpreter", TacticID: "TA0002",
		Description: "Adversaries may abuse command and script interpreters to execute commands.",
		Detection:   "Monitor process execution, especially PowerShell, CMD, and bash activity.",
		Keywords:    []string{"powershell", "cmd", "bash", "script", "shell", "interpreter"},
	},
	{
		ID: "T1203", Name: "Exploitation for Client Execution", TacticID: "TA0002",
		Description: "Adversaries may exploit software vulnerabilities in client applications.",
		Detection:   "Monitor for crashes and unusual application behavior.",
		Keywords:    []string{"client-side", "browser", "office", "document"},
	},
	{
		ID: "T1204", Name: "User Execution", TacticID: "TA0002",
		Description: "An adversary may rely upon user execution of malicious files.",
		Detection:   "Monitor for execution of suspicious files from unusual locations.",
		Keywords:    []string{"execution", "malicious", "double-click", "macro"},
	},
	{
		ID: "T1047", Name: "Windows Management Instrumentation", TacticID: "TA0002",
		Description: "Adversaries may abuse WMI to execute malicious commands and payloads.",
		Detection:   "Monitor WMI event logs and process creation via WMI.",
		Keywords:    []string{"wmi", "wmic", "instrumentation"},
	},
	{
		ID: "T1053", Name: "Scheduled Task/Job", TacticID: "TA0002",
		Description: "Adversaries may abuse task scheduling functionality.",
		Detection:   "Monitor scheduled task creation and modification.",
		Keywords:    []string{"scheduled", "task", "cron", "schtasks", "job"},
	},

	// Persistence
	{
		ID: "T1543", Name: "Create or Modify System Process", TacticID: "TA0003",
		Description: "Adversaries may create or modify system-level processes.",
		Detection:   "Monitor for new services and system process modifications.",
		Keywords:    []string{"service", "daemon", "persistence"},
	},
	{
		ID: "T1547", Name: "Boot or Logon Autostart Execution", TacticID: "TA0003",
		Description: "Adversaries may configure system settings to execute at system boot.",
		Detection:   "Monitor registry run keys and startup folder modifications.",
		Keywords:    []string{"autostart", "startup", "registry", "boot", "logon"},
	},
	{
		ID: "T1098", Name: "Account Manipulation", TacticID: "TA0003",
		Description: "Adversaries may manipulate accounts to maintain access.",
		Detection:   "Monitor for account modifications and permission changes.",
		Keywords:    []string{"manipulation", "permission", "membership", "group"},
	},
	{
		ID: "T1136", Name: "Create Account", TacticID: "TA0003",
		Description: "Adversaries may create an account to maintain access.",
		Detection:   "Monitor for new account creation, especially privileged accounts.",
		Keywords:    []string{"creation", "useradd", "newuser"},
	},

	// Privilege Escalation
	{
		ID: "T1068", Name: "Exploitation for Privilege Escalation", TacticID: "TA0004",
		Description: "Adversaries may exploit software vulnerabilities to elevate privileges.",
		Detection:   "Monitor for unusual privilege escalation and exploit attempts.",
		Keywords:    []string{"privilege", "escalation", "elevation"},
	},
	{
		ID: "T1134", Name: "Access Token Manipulation", TacticID: "TA0004",
		Description: "Adversaries may modify access tokens to elevate privileges.",
		Detection:   "Monitor for token manipulation activities.",
		Keywords:    []string{"token", "impersonation"},
	},
	{
		ID: "T1055", Name: "Process Injection", TacticID: "TA0004",
		Description: "Adversaries may inject code into processes.",
		Detection:   "Monitor for process injection techniques.",
		Keywords:    []string{"injection", "dll", "hollowing"},
	},

	// Defense Evasion
	{
		ID: "T1070", Name: "Indicator Removal", TacticID: "TA0005",
		Description: "Adversaries may delete or modify artifacts to remove evidence.",
		Detection:   "Monitor for log clearing and file deletion activities.",
		Keywords:    []string{"clearing", "wevtutil", "clear-eventlog", "eventlog"},
	},
	{
		ID: "T1027", Name: "Obfuscated Files or Information", TacticID: "TA0005",
		Description: "Adversaries may obfuscate files or information to evade detection.",
		Detection:   "Monitor for encoded or obfuscated scripts and payloads.",
		Keywords:    []string{"obfuscation", "encoding", "base64", "encrypted", "packed"},
	},
	{
		ID: "T1562", Name: "Impair Defenses", TacticID: "TA0005",
		Description: "Adversaries may maliciously modify security tools.",
		Detection:   "Monitor for security tool tampering and disablement.",
		Keywords:    []string{"disable", "antivirus", "firewall", "tamper", "defender"},
	},
	{
		ID: "T1218", Name: "System Binary Proxy Execution", TacticID: "TA0005",
		Description: "Adversaries may bypass process and signature-based defenses with trusted binaries.",
		Detection:   "Monitor for unusual usage of system binaries.",
		Keywords:    []string{"rundll32", "regsvr32", "mshta", "lolbin"},
	},
	{
		ID: "T1036", Name: "Masquerading", TacticID: "TA0005",
		Description: "Adversaries may manipulate file or process names to evade defenses.",
		Detection:   "Monitor for files with misleading names or extensions.",
		Keywords:    []string{"masquerading", "rename", "spoofed"},
	},

	// Credential Access
	{
		ID: "T1110", Name: "Brute Force", TacticID: "TA0006",
		Description: "Adversaries may use brute force techniques to gain access to accounts.",
		Detection:   "Monitor for multiple failed login attempts.",
		Keywords:    []string{"brute", "password", "spray", "stuffing", "failed", "login"},
	},
	{
		ID: "T1003", Name: "OS Credential Dumping", TacticID: "TA0006",
		Description: "Adversaries may attempt to dump credentials from the operating system.",
		Detection:   "Monitor for LSASS access and credential dumping tools.",
		Keywords:    []string{"mimikatz", "lsass", "dump", "sam", "ntds"},
	},
	{
		ID: "T1555", Name: "Credentials from Password Stores", TacticID: "TA0006",
		Description: "Adversaries may search for credentials in password stores.",
		Detection:   "Monitor access to credential managers and password stores.",
		Keywords:    []string{"store", "vault", "keychain"},
	},
	{
		ID: "T1056", Name: "Input Capture", TacticID: "TA0006",
		Description: "Adversaries may use methods to capture user input.",
		Detection:   "Monitor for keylogging software and activities.",
		Keywords:    []string{"keylogger", "keystroke", "capture"},
	},

	// Discovery
	{
		ID: "T1087", Name: "Account Discovery", TacticID: "TA0007",
		Description: "Adversaries may attempt to get a listing of accounts.",
		Detection:   "Monitor for account enumeration commands.",
		Keywords:    []string{"whoami", "enumeration", "accounts"},
	},
	{
		ID: "T1083", Name: "File and Directory Discovery", TacticID: "TA0007",
		Description: "Adversaries may enumerate files and directories.",
		Detection:   "Monitor for file system enumeration activities.",
		Keywords:    []string{"directory", "listing", "tree"},
	},
	{
		ID: "T1135", Name: "Network Share Discovery", TacticID: "TA0007",
		Description: "Adversaries may look for network shares.",
		Detection:   "Monitor for network share enumeration.",
		Keywords:    []string{"share", "shares", "netview"},
	},
	{
		ID: "T1046", Name: "Network Service Discovery", TacticID: "TA0007",
		Description: "Adversaries may attempt to get a listing of services running on remote hosts.",
		Detection:   "Monitor for port scanning and service enumeration.",
		Keywords:    []string{"scan", "nmap", "port", "scanning"},
	},
	{
		ID: "T1057", Name: "Process Discovery", TacticID: "TA0007",
		Description: "Adversaries may attempt to get information about running processes.",
		Detection:   "Monitor for process enumeration commands.",
		Keywords:    []string{"tasklist", "ps", "get-process"},
	},
	{
		ID: "T1018", Name: "Remote System Discovery", TacticID: "TA0007",
		Description: "Adversaries may attempt to get a listing of other systems.",
		Detection:   "Monitor for network discovery activities.",
		Keywords:    []string{"ping", "sweep", "discovery"},
	},
	{
		ID: "T1082", Name: "System Information Discovery", TacticID: "TA0007",
		Description: "An adversary may attempt to get detailed information about the operating system.",
		Detection:   "Monitor for system information gathering commands.",
		Keywords:    []string{"systeminfo", "uname", "hostname"},
	},

	// Lateral Movement
	{
		ID: "T1021", Name: "Remote Services", TacticID: "TA0008",
		Description: "Adversaries may use valid accounts to log into remote services.",
		Detection:   "Monitor for unusual remote service connections.",
		Keywords:    []string{"rdp", "ssh", "winrm", "smb", "lateral"},
	},
	{
		ID: "T1210", Name: "Exploitation of Remote Services", TacticID: "TA0008",
		Description: "Adversaries may exploit remote services to gain access.",
		Detection:   "Monitor for exploitation attempts on remote services.",
		Keywords:    []string{"eternalblue", "smbghost"},
	},
	{
		ID: "T1534", Name: "Internal Spearphishing", TacticID: "TA0008",
		Description: "Adversaries may use internal spearphishing to gain access to additional systems.",
		Detection:   "Monitor for suspicious internal emails.",
		Keywords:    []string{"internal", "mailbox"},
	},

	// Collection
	{
		ID: "T1005", Name: "Data from Local System", TacticID: "TA0009",
		Description: "Adversaries may search local system sources for data.",
		Detection:   "Monitor for unusual file access patterns.",
		Keywords:    []string{"collection", "staging", "sensitive"},
	},
	{
		ID: "T1039", Name: "Data from Network Shared Drive", TacticID: "TA0009",
		Description: "Adversaries may search network shares for data.",
		Detection:   "Monitor for unusual network share access.",
		Keywords:    []string{"fileshare", "mapped"},
	},
	{
		ID: "T1113", Name: "Screen Capture", TacticID: "TA0009",
		Description: "Adversaries may attempt to take screen captures.",
		Detection:   "Monitor for screen capture tools and API calls.",
		Keywords:    []string{"screenshot", "screen", "printscreen"},
	},
	{
		ID: "T1560", Name: "Archive Collected Data", TacticID: "TA0009",
		Description: "Adversaries may compress and/or encrypt data prior to exfiltration.",
		Detection:   "Monitor for archiving activities and compression tools.",
		Keywords:    []string{"compression", "archive", "zip", "rar", "7zip"},
	},

	// Exfiltration
	{
		ID: "T1041", Name: "Exfiltration Over C2 Channel", TacticID: "TA0010",
		Description: "Adversaries may steal data by exfiltrating it over their command and control channel.",
		Detection:   "Monitor for unusual data transfers over C2 channels.",
		Keywords:    []string{"exfiltration", "exfil", "c2"},
	},
	{
		ID: "T1048", Name: "Exfiltration Over Alternative Protocol", TacticID: "TA0010",
		Description: "Adversaries may steal data by exfiltrating it over an alternative protocol.",
		Detection:   "Monitor for unusual protocol usage for data transfer.",
		Keywords:    []string{"dns", "icmp", "tunneling"},
	},
	{
		ID: "T1567", Name: "Exfiltration Over Web Service", TacticID: "TA0010",
		Description: "Adversaries may use web services to exfiltrate data.",
		Detection:   "Monitor for large uploads to external web services.",
		Keywords:    []string{"upload", "dropbox", "pastebin", "cloud"},
	},

	// Command and Control
	{
		ID: "T1071", Name: "Application Layer Protocol", TacticID: "TA0011",
		Description: "Adversaries may communicate using application layer protocols.",
		Detection:   "Monitor for unusual application protocol usage.",
		Keywords:    []string{"beacon", "http", "https", "callback"},
	},
	{
		ID: "T1095", Name: "Non-Application Layer Protocol", TacticID: "TA0011",
		Description: "Adversaries may use non-application layer protocols for C2.",
		Detection:   "Monitor for unusual network protocols.",
		Keywords:    []string{"raw", "socket", "protocol"},
	},
	{
		ID: "T1573", Name: "Encrypted Channel", TacticID: "TA0011",
		Description: "Adversaries may employ encryption to protect C2 communications.",
		Detection:   "Monitor for encrypted channels to suspicious destinations.",
		Keywords:    []string{"tls", "ssl", "certificate"},
	},
	{
		ID: "T1090", Name: "Proxy", TacticID: "TA0011",
		Description: "Adversaries may use proxies to disguise C2 traffic.",
		Detection:   "Monitor for proxy usage and traffic redirection.",
		Keywords:    []string{"proxy", "socks", "redirection"},
	},

	// Impact
	{
		ID: "T1486", Name: "Data Encrypted for Impact", TacticID: "TA0040",
		Description: "Adversaries may encrypt data to impact availability.",
		Detection:   "Monitor for ransomware indicators and mass file encryption.",
		Keywords:    []string{"ransomware", "ransom", "encryption"},
	},
	{
		ID: "T1490", Name: "Inhibit System Recovery", TacticID: "TA0040",
		Description: "Adversaries may delete or remove backup data.",
		Detection:   "Monitor for backup deletion and shadow copy removal.",
		Keywords:    []string{"backup", "shadow", "vssadmin"},
	},
	{
		ID: "T1485", Name: "Data Destruction", TacticID: "TA0040",
		Description: "Adversaries may destroy data to impact availability.",
		Detection:   "Monitor for mass file deletion activities.",
		Keywords:    []string{"destruction", "deletion", "wiper", "wiping"},
	},
	{
		ID: "T1498", Name: "Network Denial of Service", TacticID: "TA0040",
		Description: "Adversaries may perform DoS attacks to degrade or block service availability.",
		Detection:   "Monitor for unusual network traffic patterns.",
		Keywords:    []string{"ddos", "flooding", "dos"},
	},
	{
		ID: "T1489", Name: "Service Stop", TacticID: "TA0040",
		Description: "Adversaries may stop or disable services.",
		Detection:   "Monitor for service stop commands.",
		Keywords:    []string{"stop", "stopped", "halted"},
	},
}
